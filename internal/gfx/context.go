// Package gfx defines the immediate-mode drawing context the background
// renderer is written against. The method set follows WebGL 1 so the same
// renderer runs on the browser, desktop OpenGL and the software rasterizer.
package gfx

// Enum is a GL enumerant. Values match OpenGL ES 2.0 / WebGL 1.
type Enum uint32

const (
	NoError          Enum = 0
	InvalidEnum      Enum = 0x0500
	InvalidValue     Enum = 0x0501
	InvalidOperation Enum = 0x0502

	Triangles Enum = 0x0004

	UnsignedShort Enum = 0x1403
	Float         Enum = 0x1406

	ColorBufferBit Enum = 0x4000

	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4

	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
)

// Buffer, Shader and Program are object handles. Zero is the null object.
type (
	Buffer  uint32
	Shader  uint32
	Program uint32
)

// Attrib is a vertex attribute location, -1 when the name is not active.
type Attrib int32

// Uniform is a uniform location, -1 when the name is not active.
type Uniform int32

// Context is a handle to a GPU driver bound to exactly one surface.
type Context interface {
	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, data []byte, usage Enum)

	CreateShader(typ Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	// ShaderCompiled reports the compile status and the info log.
	ShaderCompiled(s Shader) (bool, string)
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	// ProgramLinked reports the link status and the info log.
	ProgramLinked(p Program) (bool, string)
	UseProgram(p Program)

	GetAttribLocation(p Program, name string) Attrib
	VertexAttribPointer(a Attrib, size int, typ Enum, normalized bool, stride, offset int)
	EnableVertexAttribArray(a Attrib)
	GetUniformLocation(p Program, name string) Uniform
	Uniform1f(u Uniform, v float32)

	DrawElements(mode Enum, count int, typ Enum, offset int)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
}

// Package glctx implements gfx.Context on desktop OpenGL 4.1 core profile.
// A GL context must be current on the calling (locked) OS thread.
package glctx

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"neo-background/internal/gfx"
	"neo-background/internal/gfx/glsl"
)

// Context drives the GL context that is current on the calling thread.
type Context struct {
	vao     uint32
	stages  map[gfx.Shader]gfx.Enum
	version string
}

var _ gfx.Context = (*Context)(nil)

// New initializes the GL bindings for the current context. Core profile
// refuses attribute setup without a bound vertex array, so one is created
// and left bound for the lifetime of the context.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL bindings: %w", err)
	}

	c := &Context{
		stages:  make(map[gfx.Shader]gfx.Enum),
		version: gl.GoStr(gl.GetString(gl.VERSION)),
	}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c, nil
}

// Version returns the driver's GL_VERSION string.
func (c *Context) Version() string {
	return c.version
}

// Close releases the vertex array object.
func (c *Context) Close() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

func (c *Context) CreateBuffer() gfx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gfx.Buffer(b)
}

func (c *Context) BindBuffer(target gfx.Enum, b gfx.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b))
}

func (c *Context) BufferData(target gfx.Enum, data []byte, usage gfx.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(data), uint32(usage))
}

func (c *Context) CreateShader(typ gfx.Enum) gfx.Shader {
	s := gfx.Shader(gl.CreateShader(uint32(typ)))
	c.stages[s] = typ
	return s
}

func (c *Context) ShaderSource(s gfx.Shader, src string) {
	src = glsl.ToCore410(src, c.stages[s])
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (c *Context) CompileShader(s gfx.Shader) {
	gl.CompileShader(uint32(s))
}

func (c *Context) ShaderCompiled(s gfx.Shader) (bool, string) {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (c *Context) DeleteShader(s gfx.Shader) {
	gl.DeleteShader(uint32(s))
	delete(c.stages, s)
}

func (c *Context) CreateProgram() gfx.Program {
	return gfx.Program(gl.CreateProgram())
}

func (c *Context) AttachShader(p gfx.Program, s gfx.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (c *Context) LinkProgram(p gfx.Program) {
	gl.LinkProgram(uint32(p))
}

func (c *Context) ProgramLinked(p gfx.Program) (bool, string) {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (c *Context) UseProgram(p gfx.Program) {
	gl.UseProgram(uint32(p))
}

func (c *Context) GetAttribLocation(p gfx.Program, name string) gfx.Attrib {
	return gfx.Attrib(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *Context) VertexAttribPointer(a gfx.Attrib, size int, typ gfx.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(a), int32(size), uint32(typ), normalized, int32(stride), uintptr(offset))
}

func (c *Context) EnableVertexAttribArray(a gfx.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (c *Context) GetUniformLocation(p gfx.Program, name string) gfx.Uniform {
	return gfx.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *Context) Uniform1f(u gfx.Uniform, v float32) {
	gl.Uniform1f(int32(u), v)
}

func (c *Context) DrawElements(mode gfx.Enum, count int, typ gfx.Enum, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(typ), gl.PtrOffset(offset))
}

func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *Context) Clear(mask gfx.Enum) {
	gl.Clear(uint32(mask))
}

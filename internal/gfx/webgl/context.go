//go:build js && wasm

// Package webgl implements gfx.Context on a browser WebGL 1 context.
package webgl

import (
	"syscall/js"

	"neo-background/internal/gfx"
)

// Context wraps a WebGLRenderingContext. JS objects are kept in tables and
// handed out as 1-based integer handles.
type Context struct {
	gl js.Value

	buffers  []js.Value
	shaders  []js.Value
	programs []js.Value
	uniforms []js.Value

	uint8Array js.Value
}

var _ gfx.Context = (*Context)(nil)

// New acquires a "webgl" context from canvas. It reports false when the
// browser cannot provide one.
func New(canvas js.Value) (*Context, bool) {
	if !canvas.Truthy() {
		return nil, false
	}
	gl := canvas.Call("getContext", "webgl")
	if gl.IsNull() || gl.IsUndefined() {
		return nil, false
	}
	return &Context{
		gl:         gl,
		uint8Array: js.Global().Get("Uint8Array"),
	}, true
}

func lookup(table []js.Value, h uint32) js.Value {
	if h == 0 || int(h) > len(table) {
		return js.Null()
	}
	return table[h-1]
}

func (c *Context) CreateBuffer() gfx.Buffer {
	c.buffers = append(c.buffers, c.gl.Call("createBuffer"))
	return gfx.Buffer(len(c.buffers))
}

func (c *Context) BindBuffer(target gfx.Enum, b gfx.Buffer) {
	c.gl.Call("bindBuffer", int(target), lookup(c.buffers, uint32(b)))
}

func (c *Context) BufferData(target gfx.Enum, data []byte, usage gfx.Enum) {
	view := c.uint8Array.New(len(data))
	js.CopyBytesToJS(view, data)
	c.gl.Call("bufferData", int(target), view, int(usage))
}

func (c *Context) CreateShader(typ gfx.Enum) gfx.Shader {
	c.shaders = append(c.shaders, c.gl.Call("createShader", int(typ)))
	return gfx.Shader(len(c.shaders))
}

func (c *Context) ShaderSource(s gfx.Shader, src string) {
	c.gl.Call("shaderSource", lookup(c.shaders, uint32(s)), src)
}

func (c *Context) CompileShader(s gfx.Shader) {
	c.gl.Call("compileShader", lookup(c.shaders, uint32(s)))
}

func (c *Context) ShaderCompiled(s gfx.Shader) (bool, string) {
	shader := lookup(c.shaders, uint32(s))
	if c.gl.Call("getShaderParameter", shader, c.gl.Get("COMPILE_STATUS")).Truthy() {
		return true, ""
	}
	return false, c.gl.Call("getShaderInfoLog", shader).String()
}

func (c *Context) DeleteShader(s gfx.Shader) {
	c.gl.Call("deleteShader", lookup(c.shaders, uint32(s)))
	if s != 0 && int(s) <= len(c.shaders) {
		c.shaders[s-1] = js.Null()
	}
}

func (c *Context) CreateProgram() gfx.Program {
	c.programs = append(c.programs, c.gl.Call("createProgram"))
	return gfx.Program(len(c.programs))
}

func (c *Context) AttachShader(p gfx.Program, s gfx.Shader) {
	c.gl.Call("attachShader", lookup(c.programs, uint32(p)), lookup(c.shaders, uint32(s)))
}

func (c *Context) LinkProgram(p gfx.Program) {
	c.gl.Call("linkProgram", lookup(c.programs, uint32(p)))
}

func (c *Context) ProgramLinked(p gfx.Program) (bool, string) {
	program := lookup(c.programs, uint32(p))
	if c.gl.Call("getProgramParameter", program, c.gl.Get("LINK_STATUS")).Truthy() {
		return true, ""
	}
	return false, c.gl.Call("getProgramInfoLog", program).String()
}

func (c *Context) UseProgram(p gfx.Program) {
	c.gl.Call("useProgram", lookup(c.programs, uint32(p)))
}

func (c *Context) GetAttribLocation(p gfx.Program, name string) gfx.Attrib {
	return gfx.Attrib(c.gl.Call("getAttribLocation", lookup(c.programs, uint32(p)), name).Int())
}

func (c *Context) VertexAttribPointer(a gfx.Attrib, size int, typ gfx.Enum, normalized bool, stride, offset int) {
	c.gl.Call("vertexAttribPointer", int(a), size, int(typ), normalized, stride, offset)
}

func (c *Context) EnableVertexAttribArray(a gfx.Attrib) {
	c.gl.Call("enableVertexAttribArray", int(a))
}

func (c *Context) GetUniformLocation(p gfx.Program, name string) gfx.Uniform {
	loc := c.gl.Call("getUniformLocation", lookup(c.programs, uint32(p)), name)
	if loc.IsNull() {
		return -1
	}
	c.uniforms = append(c.uniforms, loc)
	return gfx.Uniform(len(c.uniforms) - 1)
}

func (c *Context) Uniform1f(u gfx.Uniform, v float32) {
	if u < 0 || int(u) >= len(c.uniforms) {
		return
	}
	c.gl.Call("uniform1f", c.uniforms[u], v)
}

func (c *Context) DrawElements(mode gfx.Enum, count int, typ gfx.Enum, offset int) {
	c.gl.Call("drawElements", int(mode), count, int(typ), offset)
}

func (c *Context) Viewport(x, y, width, height int) {
	c.gl.Call("viewport", x, y, width, height)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.gl.Call("clearColor", r, g, b, a)
}

func (c *Context) Clear(mask gfx.Enum) {
	c.gl.Call("clear", int(mask))
}

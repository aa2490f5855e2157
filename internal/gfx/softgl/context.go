// Package softgl is a software implementation of gfx.Context. It rasterizes
// indexed triangle lists into an in-memory RGBA surface, running Go
// equivalents of the shaders registered in a Library.
package softgl

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"neo-background/internal/gfx"
	"neo-background/internal/logging"
)

type shader struct {
	typ      gfx.Enum
	source   string
	compiled bool
	log      string
	vertex   VertexStage
	fragment FragmentStage
}

type program struct {
	shaders  []gfx.Shader
	linked   bool
	log      string
	vertex   VertexStage
	fragment FragmentStage
	uniforms []float32
}

type attribPointer struct {
	buffer  gfx.Buffer
	size    int
	stride  int
	offset  int
	enabled bool
}

// Context renders into a fixed-size surface. It is not safe for concurrent
// use; row shading is parallelized internally.
type Context struct {
	img  *image.RGBA
	lib  Library
	pool *RasterPool

	next     uint32
	buffers  map[gfx.Buffer][]byte
	shaders  map[gfx.Shader]*shader
	programs map[gfx.Program]*program

	arrayBuffer   gfx.Buffer
	elementBuffer gfx.Buffer
	current       *program
	// only location 0 is backed; stages take a single vec2 attribute
	attrib attribPointer

	viewport image.Rectangle
	clear    color.RGBA

	err   gfx.Enum
	draws int
}

var _ gfx.Context = (*Context)(nil)

// Option configures a Context.
type Option func(*Context)

// WithWorkers shades rows on n goroutines. n <= 1 shades inline.
func WithWorkers(n int) Option {
	return func(c *Context) {
		if n > 1 {
			c.pool = NewRasterPool(n, n*4)
		}
	}
}

// New returns a context drawing into a width×height surface cleared to
// transparent black.
func New(width, height int, lib Library, opts ...Option) *Context {
	c := &Context{
		img:      image.NewRGBA(image.Rect(0, 0, width, height)),
		lib:      lib,
		buffers:  make(map[gfx.Buffer][]byte),
		shaders:  make(map[gfx.Shader]*shader),
		programs: make(map[gfx.Program]*program),
		viewport: image.Rect(0, 0, width, height),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Image returns the surface. Row 0 is the top of the picture.
func (c *Context) Image() *image.RGBA {
	return c.img
}

// DrawCalls returns how many DrawElements calls reached the rasterizer.
func (c *Context) DrawCalls() int {
	return c.draws
}

// Err returns the first error recorded since the last call and resets it,
// like glGetError.
func (c *Context) Err() gfx.Enum {
	e := c.err
	c.err = gfx.NoError
	return e
}

// Close stops the raster workers.
func (c *Context) Close() {
	if c.pool != nil {
		c.pool.Shutdown()
		c.pool = nil
	}
}

func (c *Context) setErr(e gfx.Enum) {
	if c.err == gfx.NoError {
		c.err = e
	}
}

func (c *Context) handle() uint32 {
	c.next++
	return c.next
}

func (c *Context) CreateBuffer() gfx.Buffer {
	b := gfx.Buffer(c.handle())
	c.buffers[b] = nil
	return b
}

func (c *Context) BindBuffer(target gfx.Enum, b gfx.Buffer) {
	if _, ok := c.buffers[b]; b != 0 && !ok {
		c.setErr(gfx.InvalidOperation)
		return
	}
	switch target {
	case gfx.ArrayBuffer:
		c.arrayBuffer = b
	case gfx.ElementArrayBuffer:
		c.elementBuffer = b
	default:
		c.setErr(gfx.InvalidEnum)
	}
}

func (c *Context) bound(target gfx.Enum) (gfx.Buffer, bool) {
	switch target {
	case gfx.ArrayBuffer:
		return c.arrayBuffer, true
	case gfx.ElementArrayBuffer:
		return c.elementBuffer, true
	}
	return 0, false
}

func (c *Context) BufferData(target gfx.Enum, data []byte, usage gfx.Enum) {
	b, ok := c.bound(target)
	if !ok {
		c.setErr(gfx.InvalidEnum)
		return
	}
	if b == 0 {
		c.setErr(gfx.InvalidOperation)
		return
	}
	c.buffers[b] = append([]byte(nil), data...)
}

func (c *Context) CreateShader(typ gfx.Enum) gfx.Shader {
	if typ != gfx.VertexShader && typ != gfx.FragmentShader {
		c.setErr(gfx.InvalidEnum)
		return 0
	}
	s := gfx.Shader(c.handle())
	c.shaders[s] = &shader{typ: typ}
	return s
}

func (c *Context) ShaderSource(s gfx.Shader, src string) {
	sh, ok := c.shaders[s]
	if !ok {
		c.setErr(gfx.InvalidValue)
		return
	}
	sh.source = src
}

func (c *Context) CompileShader(s gfx.Shader) {
	sh, ok := c.shaders[s]
	if !ok {
		c.setErr(gfx.InvalidValue)
		return
	}

	sh.compiled = false
	switch sh.typ {
	case gfx.VertexShader:
		sh.vertex, sh.compiled = c.lib.Vertex[sh.source]
	case gfx.FragmentShader:
		sh.fragment, sh.compiled = c.lib.Fragment[sh.source]
	}
	if !sh.compiled {
		sh.log = "no software stage registered for this source"
		logging.Logger().Debug("softgl: shader compile failed", "shader", s, "bytes", len(sh.source))
		return
	}
	sh.log = ""
}

func (c *Context) ShaderCompiled(s gfx.Shader) (bool, string) {
	sh, ok := c.shaders[s]
	if !ok {
		c.setErr(gfx.InvalidValue)
		return false, ""
	}
	return sh.compiled, sh.log
}

func (c *Context) DeleteShader(s gfx.Shader) {
	if s == 0 {
		return
	}
	delete(c.shaders, s)
}

func (c *Context) CreateProgram() gfx.Program {
	p := gfx.Program(c.handle())
	c.programs[p] = &program{}
	return p
}

func (c *Context) AttachShader(p gfx.Program, s gfx.Shader) {
	prog, ok := c.programs[p]
	if !ok {
		c.setErr(gfx.InvalidValue)
		return
	}
	if _, ok := c.shaders[s]; !ok {
		c.setErr(gfx.InvalidValue)
		return
	}
	prog.shaders = append(prog.shaders, s)
}

func (c *Context) LinkProgram(p gfx.Program) {
	prog, ok := c.programs[p]
	if !ok {
		c.setErr(gfx.InvalidValue)
		return
	}

	var haveVertex, haveFragment bool
	for _, s := range prog.shaders {
		sh, ok := c.shaders[s]
		if !ok || !sh.compiled {
			continue
		}
		switch sh.typ {
		case gfx.VertexShader:
			prog.vertex, haveVertex = sh.vertex, true
		case gfx.FragmentShader:
			prog.fragment, haveFragment = sh.fragment, true
		}
	}

	prog.linked = haveVertex && haveFragment
	if !prog.linked {
		prog.log = "program needs one compiled vertex and one compiled fragment shader"
		return
	}
	prog.log = ""
	prog.uniforms = make([]float32, len(prog.fragment.Uniforms))
}

func (c *Context) ProgramLinked(p gfx.Program) (bool, string) {
	prog, ok := c.programs[p]
	if !ok {
		c.setErr(gfx.InvalidValue)
		return false, ""
	}
	return prog.linked, prog.log
}

func (c *Context) UseProgram(p gfx.Program) {
	if p == 0 {
		c.current = nil
		return
	}
	prog, ok := c.programs[p]
	if !ok {
		c.setErr(gfx.InvalidValue)
		return
	}
	if !prog.linked {
		c.setErr(gfx.InvalidOperation)
		return
	}
	c.current = prog
}

func (c *Context) GetAttribLocation(p gfx.Program, name string) gfx.Attrib {
	prog, ok := c.programs[p]
	if !ok || !prog.linked {
		c.setErr(gfx.InvalidOperation)
		return -1
	}
	if prog.vertex.Attribute != name {
		return -1
	}
	return 0
}

func (c *Context) VertexAttribPointer(a gfx.Attrib, size int, typ gfx.Enum, normalized bool, stride, offset int) {
	switch {
	case a != 0:
		c.setErr(gfx.InvalidValue)
		return
	case typ != gfx.Float:
		c.setErr(gfx.InvalidEnum)
		return
	case size < 1 || size > 4 || stride < 0 || offset < 0:
		c.setErr(gfx.InvalidValue)
		return
	case c.arrayBuffer == 0:
		c.setErr(gfx.InvalidOperation)
		return
	}
	// normalization only applies to integer types
	c.attrib = attribPointer{
		buffer:  c.arrayBuffer,
		size:    size,
		stride:  stride,
		offset:  offset,
		enabled: c.attrib.enabled,
	}
}

func (c *Context) EnableVertexAttribArray(a gfx.Attrib) {
	if a != 0 {
		c.setErr(gfx.InvalidValue)
		return
	}
	c.attrib.enabled = true
}

func (c *Context) GetUniformLocation(p gfx.Program, name string) gfx.Uniform {
	prog, ok := c.programs[p]
	if !ok || !prog.linked {
		c.setErr(gfx.InvalidOperation)
		return -1
	}
	for i, n := range prog.fragment.Uniforms {
		if n == name {
			return gfx.Uniform(i)
		}
	}
	return -1
}

func (c *Context) Uniform1f(u gfx.Uniform, v float32) {
	if u == -1 {
		return
	}
	if c.current == nil {
		c.setErr(gfx.InvalidOperation)
		return
	}
	if u < 0 || int(u) >= len(c.current.uniforms) {
		c.setErr(gfx.InvalidOperation)
		return
	}
	c.current.uniforms[u] = v
}

func (c *Context) DrawElements(mode gfx.Enum, count int, typ gfx.Enum, offset int) {
	switch {
	case mode != gfx.Triangles || typ != gfx.UnsignedShort:
		c.setErr(gfx.InvalidEnum)
		return
	case count < 0 || offset < 0 || offset%2 != 0:
		c.setErr(gfx.InvalidValue)
		return
	case c.current == nil || !c.attrib.enabled || c.elementBuffer == 0:
		c.setErr(gfx.InvalidOperation)
		return
	}

	indices := c.buffers[c.elementBuffer]
	if offset+count*2 > len(indices) {
		c.setErr(gfx.InvalidOperation)
		return
	}

	c.draws++
	prog := c.current
	for i := 0; i+2 < count; i += 3 {
		var tri [3]rasterVertex
		for k := range tri {
			idx := binary.LittleEndian.Uint16(indices[offset+(i+k)*2:])
			pos, ok := c.fetch(int(idx))
			if !ok {
				c.setErr(gfx.InvalidOperation)
				return
			}
			clip, varying := prog.vertex.Shade(pos)
			tri[k] = c.toWindow(clip, varying)
		}
		c.rasterize(tri, prog)
	}
}

// fetch reads the position attribute of vertex idx.
func (c *Context) fetch(idx int) (mgl32.Vec2, bool) {
	data := c.buffers[c.attrib.buffer]
	stride := c.attrib.stride
	if stride == 0 {
		stride = c.attrib.size * 4
	}
	base := c.attrib.offset + idx*stride
	if base < 0 || base+c.attrib.size*4 > len(data) {
		return mgl32.Vec2{}, false
	}

	var pos mgl32.Vec2
	for k := 0; k < c.attrib.size && k < 2; k++ {
		pos[k] = math.Float32frombits(binary.LittleEndian.Uint32(data[base+k*4:]))
	}
	return pos, true
}

// toWindow applies the perspective divide and viewport transform.
func (c *Context) toWindow(clip mgl32.Vec4, varying mgl32.Vec2) rasterVertex {
	w := clip.W()
	if w == 0 {
		w = 1
	}
	vp := c.viewport
	return rasterVertex{
		x:       float32(vp.Min.X) + (clip.X()/w+1)*0.5*float32(vp.Dx()),
		y:       float32(vp.Min.Y) + (clip.Y()/w+1)*0.5*float32(vp.Dy()),
		varying: varying,
	}
}

func (c *Context) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		c.setErr(gfx.InvalidValue)
		return
	}
	c.viewport = image.Rect(x, y, x+width, y+height)
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.clear = color.RGBA{R: quantize(r), G: quantize(g), B: quantize(b), A: quantize(a)}
}

func (c *Context) Clear(mask gfx.Enum) {
	if mask&^gfx.ColorBufferBit != 0 {
		c.setErr(gfx.InvalidValue)
		return
	}
	if mask&gfx.ColorBufferBit == 0 {
		return
	}
	px := [4]uint8{c.clear.R, c.clear.G, c.clear.B, c.clear.A}
	for i := 0; i < len(c.img.Pix); i += 4 {
		copy(c.img.Pix[i:i+4], px[:])
	}
}

// quantize converts a normalized channel to 8 bits, rounding to nearest.
func quantize(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}

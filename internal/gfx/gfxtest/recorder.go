// Package gfxtest provides a gfx.Context that records calls instead of
// drawing, for asserting on the exact command stream a renderer issues.
package gfxtest

import (
	"slices"

	"neo-background/internal/gfx"
)

// Call is a single recorded context call. Name is the WebGL method name.
type Call struct {
	Name string
	Args []any
}

// Recorder implements gfx.Context. The zero value is not usable; call NewRecorder.
type Recorder struct {
	// FailCompile makes every shader report a failed compile.
	FailCompile bool
	// FailLink makes every program report a failed link.
	FailLink bool

	calls    []Call
	next     uint32
	uniforms map[gfx.Uniform]float32
	attribs  map[string]gfx.Attrib
	locs     map[string]gfx.Uniform
}

var _ gfx.Context = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		uniforms: make(map[gfx.Uniform]float32),
		attribs:  make(map[string]gfx.Attrib),
		locs:     make(map[string]gfx.Uniform),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

// Calls returns a copy of every recorded call in order.
func (r *Recorder) Calls() []Call {
	return slices.Clone(r.calls)
}

// Names returns the recorded call names in order. When filter is non-empty
// only calls whose name is in filter are returned.
func (r *Recorder) Names(filter ...string) []string {
	names := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		if len(filter) > 0 && !slices.Contains(filter, c.Name) {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// Count returns how many times name was called.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls with the given name.
func (r *Recorder) Find(name string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// UniformValue returns the last value written to u.
func (r *Recorder) UniformValue(u gfx.Uniform) (float32, bool) {
	v, ok := r.uniforms[u]
	return v, ok
}

// Reset forgets all recorded calls but keeps object state.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
}

func (r *Recorder) CreateBuffer() gfx.Buffer {
	b := gfx.Buffer(r.handle())
	r.record("createBuffer")
	return b
}

func (r *Recorder) BindBuffer(target gfx.Enum, b gfx.Buffer) {
	r.record("bindBuffer", target, b)
}

func (r *Recorder) BufferData(target gfx.Enum, data []byte, usage gfx.Enum) {
	r.record("bufferData", target, slices.Clone(data), usage)
}

func (r *Recorder) CreateShader(typ gfx.Enum) gfx.Shader {
	s := gfx.Shader(r.handle())
	r.record("createShader", typ)
	return s
}

func (r *Recorder) ShaderSource(s gfx.Shader, src string) {
	r.record("shaderSource", s, src)
}

func (r *Recorder) CompileShader(s gfx.Shader) {
	r.record("compileShader", s)
}

func (r *Recorder) ShaderCompiled(s gfx.Shader) (bool, string) {
	r.record("getShaderParameter", s)
	if r.FailCompile {
		return false, "ERROR: 0:1: forced compile failure"
	}
	return true, ""
}

func (r *Recorder) DeleteShader(s gfx.Shader) {
	r.record("deleteShader", s)
}

func (r *Recorder) CreateProgram() gfx.Program {
	p := gfx.Program(r.handle())
	r.record("createProgram")
	return p
}

func (r *Recorder) AttachShader(p gfx.Program, s gfx.Shader) {
	r.record("attachShader", p, s)
}

func (r *Recorder) LinkProgram(p gfx.Program) {
	r.record("linkProgram", p)
}

func (r *Recorder) ProgramLinked(p gfx.Program) (bool, string) {
	r.record("getProgramParameter", p)
	if r.FailLink {
		return false, "forced link failure"
	}
	return true, ""
}

func (r *Recorder) UseProgram(p gfx.Program) {
	r.record("useProgram", p)
}

func (r *Recorder) GetAttribLocation(p gfx.Program, name string) gfx.Attrib {
	r.record("getAttribLocation", p, name)
	a, ok := r.attribs[name]
	if !ok {
		a = gfx.Attrib(len(r.attribs))
		r.attribs[name] = a
	}
	return a
}

func (r *Recorder) VertexAttribPointer(a gfx.Attrib, size int, typ gfx.Enum, normalized bool, stride, offset int) {
	r.record("vertexAttribPointer", a, size, typ, normalized, stride, offset)
}

func (r *Recorder) EnableVertexAttribArray(a gfx.Attrib) {
	r.record("enableVertexAttribArray", a)
}

func (r *Recorder) GetUniformLocation(p gfx.Program, name string) gfx.Uniform {
	r.record("getUniformLocation", p, name)
	u, ok := r.locs[name]
	if !ok {
		u = gfx.Uniform(len(r.locs))
		r.locs[name] = u
	}
	return u
}

func (r *Recorder) Uniform1f(u gfx.Uniform, v float32) {
	r.record("uniform1f", u, v)
	r.uniforms[u] = v
}

func (r *Recorder) DrawElements(mode gfx.Enum, count int, typ gfx.Enum, offset int) {
	r.record("drawElements", mode, count, typ, offset)
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("viewport", x, y, width, height)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("clearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask gfx.Enum) {
	r.record("clear", mask)
}

// Package background renders the animated falling-notes backdrop: a
// fullscreen quad whose fragment shader is a pure function of elapsed time.
package background

import (
	_ "embed"

	"neo-background/internal/gfx"
	"neo-background/internal/logging"
)

var (
	//go:embed shaders/background.vert
	VertexSource string

	//go:embed shaders/background.frag
	FragmentSource string
)

const (
	PositionAttribute = "pos"
	TimeUniform       = "u_time"
)

// QuadVertices is the fullscreen quad spanning [-1,1]², two floats per vertex.
var QuadVertices = []float32{
	-1.0, -1.0,
	1.0, -1.0,
	1.0, 1.0,
	-1.0, 1.0,
}

// QuadIndices splits the quad into two triangles.
var QuadIndices = []uint16{0, 1, 3, 3, 1, 2}

// Renderer owns the GPU resources for one animated surface: the quad
// buffers, the linked program and the time uniform.
type Renderer struct {
	ctx gfx.Context

	vertexBuffer gfx.Buffer
	indexBuffer  gfx.Buffer
	program      gfx.Program
	position     gfx.Attrib
	timeLocation gfx.Uniform
	indexCount   int

	err error
}

// New uploads the quad, builds the shader program and binds its inputs.
// A program that fails to compile or link is not reported to the caller;
// the failure is logged and available from Err, and drawing does nothing
// useful.
func New(ctx gfx.Context) *Renderer {
	r := &Renderer{
		ctx:        ctx,
		indexCount: len(QuadIndices),
	}

	r.vertexBuffer = ctx.CreateBuffer()
	r.indexBuffer = ctx.CreateBuffer()

	ctx.BindBuffer(gfx.ArrayBuffer, r.vertexBuffer)
	ctx.BufferData(gfx.ArrayBuffer, gfx.Float32Bytes(QuadVertices...), gfx.StaticDraw)
	ctx.BindBuffer(gfx.ElementArrayBuffer, r.indexBuffer)
	ctx.BufferData(gfx.ElementArrayBuffer, gfx.Uint16Bytes(QuadIndices...), gfx.StaticDraw)

	program, err := gfx.CompileProgram(ctx, VertexSource, FragmentSource)
	if err != nil {
		r.err = err
		logging.Logger().Warn("background: shader program is unusable", "error", err)
	}
	r.program = program
	ctx.UseProgram(program)

	// Both buffers stay bound: the attribute reads from the array binding
	// and draws read indices from the element binding.
	r.position = ctx.GetAttribLocation(program, PositionAttribute)
	ctx.VertexAttribPointer(r.position, 2, gfx.Float, false, 0, 0)
	ctx.EnableVertexAttribArray(r.position)

	r.timeLocation = ctx.GetUniformLocation(program, TimeUniform)

	return r
}

// UpdateTime sets the elapsed time, given in milliseconds.
func (r *Renderer) UpdateTime(elapsedMillis float64) {
	r.ctx.Uniform1f(r.timeLocation, float32(elapsedMillis/1000.0))
}

// Draw paints one frame over the whole viewport.
func (r *Renderer) Draw() {
	r.ctx.DrawElements(gfx.Triangles, r.indexCount, gfx.UnsignedShort, 0)
}

// Err returns the shader compile/link diagnostics, if any.
func (r *Renderer) Err() error {
	return r.err
}

// IndexCount returns the number of indices issued per draw.
func (r *Renderer) IndexCount() int {
	return r.indexCount
}

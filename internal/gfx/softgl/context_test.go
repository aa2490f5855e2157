package softgl_test

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neo-background/internal/gfx"
	"neo-background/internal/gfx/softgl"
)

const (
	passVertex = "attribute vec2 a_pos; void main() {}"
	flatFrag   = "uniform float u_red; void main() {}"
)

func testLibrary() softgl.Library {
	return softgl.Library{
		Vertex: map[string]softgl.VertexStage{
			passVertex: {
				Attribute: "a_pos",
				Shade: func(pos mgl32.Vec2) (mgl32.Vec4, mgl32.Vec2) {
					return mgl32.Vec4{pos[0], pos[1], 0, 1}, mgl32.Vec2{pos[0]*0.5 + 0.5, pos[1]*0.5 + 0.5}
				},
			},
		},
		Fragment: map[string]softgl.FragmentStage{
			flatFrag: {
				Uniforms: []string{"u_red"},
				Shade: func(_ mgl32.Vec2, u []float32) mgl32.Vec4 {
					return mgl32.Vec4{u[0], 0, 1, 1}
				},
			},
		},
	}
}

// setupQuad uploads a quad with the given corner positions and links the
// flat program.
func setupQuad(t *testing.T, ctx *softgl.Context, x0, y0, x1, y1 float32) gfx.Uniform {
	t.Helper()

	vb := ctx.CreateBuffer()
	ib := ctx.CreateBuffer()
	ctx.BindBuffer(gfx.ArrayBuffer, vb)
	ctx.BufferData(gfx.ArrayBuffer, gfx.Float32Bytes(x0, y0, x1, y0, x1, y1, x0, y1), gfx.StaticDraw)
	ctx.BindBuffer(gfx.ElementArrayBuffer, ib)
	ctx.BufferData(gfx.ElementArrayBuffer, gfx.Uint16Bytes(0, 1, 3, 3, 1, 2), gfx.StaticDraw)

	program, err := gfx.CompileProgram(ctx, passVertex, flatFrag)
	require.NoError(t, err)
	ctx.UseProgram(program)

	pos := ctx.GetAttribLocation(program, "a_pos")
	require.Equal(t, gfx.Attrib(0), pos)
	ctx.VertexAttribPointer(pos, 2, gfx.Float, false, 0, 0)
	ctx.EnableVertexAttribArray(pos)

	u := ctx.GetUniformLocation(program, "u_red")
	require.Equal(t, gfx.Uniform(0), u)
	require.Equal(t, gfx.NoError, ctx.Err())
	return u
}

func TestClear(t *testing.T) {
	ctx := softgl.New(4, 3, softgl.Library{})

	ctx.ClearColor(12.0/255.0, 12.0/255.0, 12.0/255.0, 1)
	ctx.Clear(gfx.ColorBufferBit)

	img := ctx.Image()
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.RGBA{12, 12, 12, 255}, img.RGBAAt(x, y))
		}
	}
	assert.Equal(t, 0, ctx.DrawCalls())
}

func TestFullscreenQuad(t *testing.T) {
	ctx := softgl.New(8, 8, testLibrary())
	u := setupQuad(t, ctx, -1, -1, 1, 1)

	ctx.Uniform1f(u, 1)
	ctx.DrawElements(gfx.Triangles, 6, gfx.UnsignedShort, 0)
	require.Equal(t, gfx.NoError, ctx.Err())
	assert.Equal(t, 1, ctx.DrawCalls())

	img := ctx.Image()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, color.RGBA{255, 0, 255, 255}, img.RGBAAt(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestQuadOrientation(t *testing.T) {
	ctx := softgl.New(4, 4, testLibrary())
	ctx.ClearColor(0, 0, 0, 1)
	ctx.Clear(gfx.ColorBufferBit)

	// bottom half in GL coordinates is the bottom of the image
	u := setupQuad(t, ctx, -1, -1, 1, 0)
	ctx.Uniform1f(u, 1)
	ctx.DrawElements(gfx.Triangles, 6, gfx.UnsignedShort, 0)

	img := ctx.Image()
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(3, 1))
	assert.Equal(t, color.RGBA{255, 0, 255, 255}, img.RGBAAt(0, 2))
	assert.Equal(t, color.RGBA{255, 0, 255, 255}, img.RGBAAt(3, 3))
}

func TestViewport(t *testing.T) {
	ctx := softgl.New(8, 8, testLibrary())
	ctx.ClearColor(0, 0, 0, 1)
	ctx.Clear(gfx.ColorBufferBit)
	ctx.Viewport(0, 0, 4, 4)

	u := setupQuad(t, ctx, -1, -1, 1, 1)
	ctx.Uniform1f(u, 0)
	ctx.DrawElements(gfx.Triangles, 6, gfx.UnsignedShort, 0)

	img := ctx.Image()
	// lower-left quarter of the window is the bottom-left of the image
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 7))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(3, 4))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(4, 4))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 3))
}

func TestUnknownSourceFailsToCompile(t *testing.T) {
	ctx := softgl.New(2, 2, testLibrary())

	program, err := gfx.CompileProgram(ctx, "void main() {}", flatFrag)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no software stage registered")

	ok, _ := ctx.ProgramLinked(program)
	assert.False(t, ok)

	ctx.UseProgram(program)
	assert.Equal(t, gfx.InvalidOperation, ctx.Err())
	assert.Equal(t, gfx.NoError, ctx.Err(), "Err resets")
}

func TestDrawValidation(t *testing.T) {
	ctx := softgl.New(2, 2, testLibrary())

	ctx.DrawElements(gfx.Triangles, 6, gfx.UnsignedShort, 0)
	assert.Equal(t, gfx.InvalidOperation, ctx.Err(), "no program")

	setupQuad(t, ctx, -1, -1, 1, 1)

	ctx.DrawElements(gfx.Triangles, 6, gfx.Float, 0)
	assert.Equal(t, gfx.InvalidEnum, ctx.Err())

	ctx.DrawElements(gfx.Triangles, 12, gfx.UnsignedShort, 0)
	assert.Equal(t, gfx.InvalidOperation, ctx.Err(), "index range past the buffer")

	ctx.DrawElements(gfx.Triangles, 3, gfx.UnsignedShort, 1)
	assert.Equal(t, gfx.InvalidValue, ctx.Err(), "misaligned offset")

	assert.Equal(t, 0, ctx.DrawCalls())
}

func TestStridedAttribute(t *testing.T) {
	ctx := softgl.New(4, 4, testLibrary())

	vb := ctx.CreateBuffer()
	ib := ctx.CreateBuffer()
	ctx.BindBuffer(gfx.ArrayBuffer, vb)
	// x, y, padding
	ctx.BufferData(gfx.ArrayBuffer, gfx.Float32Bytes(
		-1, -1, 9,
		1, -1, 9,
		1, 1, 9,
		-1, 1, 9,
	), gfx.StaticDraw)
	ctx.BindBuffer(gfx.ElementArrayBuffer, ib)
	ctx.BufferData(gfx.ElementArrayBuffer, gfx.Uint16Bytes(0, 1, 3, 3, 1, 2), gfx.StaticDraw)

	program, err := gfx.CompileProgram(ctx, passVertex, flatFrag)
	require.NoError(t, err)
	ctx.UseProgram(program)
	ctx.VertexAttribPointer(0, 2, gfx.Float, false, 12, 0)
	ctx.EnableVertexAttribArray(0)

	ctx.DrawElements(gfx.Triangles, 6, gfx.UnsignedShort, 0)
	require.Equal(t, gfx.NoError, ctx.Err())

	img := ctx.Image()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(x, y))
		}
	}
}

func TestUniformLocationMinusOneIsIgnored(t *testing.T) {
	ctx := softgl.New(2, 2, testLibrary())
	setupQuad(t, ctx, -1, -1, 1, 1)

	ctx.Uniform1f(-1, 5)
	assert.Equal(t, gfx.NoError, ctx.Err())

	ctx.Uniform1f(3, 5)
	assert.Equal(t, gfx.InvalidOperation, ctx.Err())
}

func TestLibraryMerge(t *testing.T) {
	other := softgl.Library{
		Fragment: map[string]softgl.FragmentStage{"x": {}},
	}
	merged := testLibrary().Merge(other)
	assert.Len(t, merged.Vertex, 1)
	assert.Len(t, merged.Fragment, 2)
}

func BenchmarkFullscreenQuad(b *testing.B) {
	ctx := softgl.New(320, 200, testLibrary(), softgl.WithWorkers(4))
	defer ctx.Close()

	vb := ctx.CreateBuffer()
	ib := ctx.CreateBuffer()
	ctx.BindBuffer(gfx.ArrayBuffer, vb)
	ctx.BufferData(gfx.ArrayBuffer, gfx.Float32Bytes(-1, -1, 1, -1, 1, 1, -1, 1), gfx.StaticDraw)
	ctx.BindBuffer(gfx.ElementArrayBuffer, ib)
	ctx.BufferData(gfx.ElementArrayBuffer, gfx.Uint16Bytes(0, 1, 3, 3, 1, 2), gfx.StaticDraw)
	program, _ := gfx.CompileProgram(ctx, passVertex, flatFrag)
	ctx.UseProgram(program)
	ctx.VertexAttribPointer(0, 2, gfx.Float, false, 0, 0)
	ctx.EnableVertexAttribArray(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.DrawElements(gfx.Triangles, 6, gfx.UnsignedShort, 0)
	}
}

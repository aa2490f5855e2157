package background

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"neo-background/internal/gfx/softgl"
)

// Scene constants shared by the GLSL, WGSL and Go versions of the shader.
const (
	Speed      = -0.5
	Period     = 5.0
	Travel     = 2.6
	Brightness = 2.5

	rotation  = 0.7
	stretch   = 1.5
	tile      = 0.5
	halfWidth = 127.0 / 5800.0
	blur      = 0.002
)

// Band is one falling note column.
type Band struct {
	// Offset shifts the band's phase, in seconds of scaled time.
	Offset float32
	// X is the band's horizontal center inside a tile.
	X float32
	// Primary bands use the darker tint.
	Primary bool
}

// Bands are composited in order; later bands paint over earlier ones.
var Bands = [...]Band{
	{Offset: 0, X: 0.1},
	{Offset: 1, X: 0.2},
	{Offset: 3, X: 0.3},
	{Offset: 2, X: 0.4},
	{Offset: 0, X: 0.5, Primary: true},
	{Offset: 4, X: 0.5, Primary: true},
}

var (
	BaseColor    = mgl32.Vec3{0.12, 0.12, 0.12}
	NoteColor    = mgl32.Vec3{160.0 / 255.0, 81.0 / 255.0, 238.0 / 255.0}
	PrimaryColor = mgl32.Vec3{113.0 / 255.0, 48.0 / 255.0, 178.0 / 255.0}

	rotZ = mgl32.Rotate2D(rotation)
)

// glslMod is GLSL's mod: the result takes the sign of y.
func glslMod(x, y float32) float32 {
	return x - y*math32.Floor(x/y)
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Shift returns how far a band with the given phase offset has fallen
// after seconds. It repeats every Period/|Speed| seconds.
func Shift(seconds, offset float32) float32 {
	return glslMod(seconds*Speed+offset, Period) / Period * Travel
}

// Transform maps a surface coordinate in [0,1]² into band space: rotated,
// stretched and tiled horizontally.
func Transform(st mgl32.Vec2) mgl32.Vec2 {
	p := rotZ.Mul2x1(st)
	p[0] = glslMod(p[0]*stretch, tile)
	p[1] += 0.5
	return p
}

// Composite blends every band over the base color at band-space point p.
func Composite(p mgl32.Vec2, seconds float32) mgl32.Vec3 {
	color := BaseColor
	for _, b := range Bands {
		uv := mgl32.Vec2{p[0], p[1] - Shift(seconds, b.Offset)}
		if uv[1] <= 0 || uv[1] >= 0.5 {
			continue
		}
		tint := NoteColor
		if b.Primary {
			tint = PrimaryColor
		}
		d := math32.Abs(glslMod(uv[0], tile) - b.X)
		color = mix(color, tint, smoothstep(-blur, 0, halfWidth-d))
	}
	return color
}

// Shade is the fragment stage: the pixel color at surface coordinate st.
func Shade(st mgl32.Vec2, seconds float32) mgl32.Vec4 {
	c := Composite(Transform(st), seconds)
	return mgl32.Vec4{c[0] / Brightness, c[1] / Brightness, c[2] / Brightness, 1}
}

func shadeVertex(pos mgl32.Vec2) (mgl32.Vec4, mgl32.Vec2) {
	return mgl32.Vec4{pos[0], pos[1], 0, 1}, mgl32.Vec2{pos[0]*0.5 + 0.5, pos[1]*0.5 + 0.5}
}

// SoftwareLibrary registers the Go stages for VertexSource and
// FragmentSource so the scene can be drawn by softgl.
func SoftwareLibrary() softgl.Library {
	return softgl.Library{
		Vertex: map[string]softgl.VertexStage{
			VertexSource: {Attribute: PositionAttribute, Shade: shadeVertex},
		},
		Fragment: map[string]softgl.FragmentStage{
			FragmentSource: {
				Uniforms: []string{TimeUniform},
				Shade: func(st mgl32.Vec2, uniforms []float32) mgl32.Vec4 {
					return Shade(st, uniforms[0])
				},
			},
		},
	}
}

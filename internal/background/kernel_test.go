package background

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestGLSLMod(t *testing.T) {
	assert.Equal(t, float32(0.75), glslMod(-1.25, 1))
	assert.Equal(t, float32(0.25), glslMod(1.25, 1))
	assert.Equal(t, float32(4.75), glslMod(-0.25, 5))
	assert.Equal(t, float32(0), glslMod(-5, 5))
}

func TestShiftAtZero(t *testing.T) {
	// at t = 0 only the phase offsets remain
	assert.Equal(t, float32(0), Shift(0, 0))
	assert.InDelta(t, 0.2*Travel, Shift(0, 1), 1e-6)
	assert.InDelta(t, 0.4*Travel, Shift(0, 2), 1e-6)
	assert.InDelta(t, 0.6*Travel, Shift(0, 3), 1e-6)
	assert.InDelta(t, 0.8*Travel, Shift(0, 4), 1e-6)
}

func TestShiftIsPeriodic(t *testing.T) {
	loop := float32(Period / -Speed)
	for _, seconds := range []float32{0, 0.25, 2.5, 3.75, 7.125} {
		for _, b := range Bands {
			want := Shift(seconds, b.Offset)
			for k := 1; k <= 3; k++ {
				assert.Equal(t, want, Shift(seconds+loop*float32(k), b.Offset),
					"t=%v offset=%v k=%d", seconds, b.Offset, k)
			}
		}
	}
}

func TestShiftStaysWithinTravel(t *testing.T) {
	for seconds := float32(-20); seconds < 20; seconds += 0.125 {
		for _, b := range Bands {
			s := Shift(seconds, b.Offset)
			assert.GreaterOrEqual(t, s, float32(0))
			assert.Less(t, s, float32(Travel))
		}
	}
}

func TestCompositeAtZero(t *testing.T) {
	// first band sits unshifted at x = 0.1
	assert.Equal(t, NoteColor, Composite(mgl32.Vec2{0.1, 0.25}, 0))

	// the primary band at x = 0.5 hugs the right edge of each tile
	assert.Equal(t, PrimaryColor, Composite(mgl32.Vec2{0.49, 0.25}, 0))

	// between bands nothing is drawn
	assert.Equal(t, BaseColor, Composite(mgl32.Vec2{0.3, 0.25}, 0))

	// above the first band; the second overlaps vertically but sits at x = 0.2
	assert.Equal(t, BaseColor, Composite(mgl32.Vec2{0.1, 0.75}, 0))
}

func TestCompositeSoftEdge(t *testing.T) {
	edge := float32(halfWidth + blur/2)
	c := Composite(mgl32.Vec2{0.1 + edge, 0.25}, 0)

	for i := range 3 {
		lo, hi := min(BaseColor[i], NoteColor[i]), max(BaseColor[i], NoteColor[i])
		assert.Greater(t, c[i], lo)
		assert.Less(t, c[i], hi)
	}
}

func TestTransformTiles(t *testing.T) {
	for _, st := range []mgl32.Vec2{{0, 0}, {0.3, 0.9}, {1, 1}, {0.75, 0.1}} {
		p := Transform(st)
		assert.GreaterOrEqual(t, p[0], float32(0))
		assert.Less(t, p[0], float32(tile))
	}
}

func TestShadeIsPure(t *testing.T) {
	st := mgl32.Vec2{0.42, 0.17}
	first := Shade(st, 3.5)
	Shade(st, 99)
	assert.Equal(t, first, Shade(st, 3.5))
	assert.Equal(t, float32(1), first[3])
}

func TestShadeDividesBrightness(t *testing.T) {
	// the bottom-left corner maps to (0, 0.5): above every band's span at t = 0
	c := Shade(mgl32.Vec2{0, 0}, 0)
	g := BaseColor[0] / Brightness
	assert.Equal(t, mgl32.Vec4{g, g, g, 1}, c)
}

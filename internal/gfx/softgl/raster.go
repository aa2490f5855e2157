package softgl

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// rasterVertex is a vertex in window coordinates (origin bottom-left).
type rasterVertex struct {
	x, y    float32
	varying mgl32.Vec2
}

func edge(a, b rasterVertex, px, py float32) float32 {
	return (px-a.x)*(b.y-a.y) - (py-a.y)*(b.x-a.x)
}

// rasterize shades every pixel whose center lies inside the triangle.
// Pixels on an edge shared by two triangles are shaded by both; the later
// triangle wins, which keeps the output deterministic.
func (c *Context) rasterize(tri [3]rasterVertex, prog *program) {
	area := edge(tri[0], tri[1], tri[2].x, tri[2].y)
	if area == 0 {
		return
	}

	bounds := c.img.Bounds()
	minX := max(int(math32.Floor(min(tri[0].x, tri[1].x, tri[2].x))), bounds.Min.X)
	maxX := min(int(math32.Ceil(max(tri[0].x, tri[1].x, tri[2].x))), bounds.Max.X)
	minY := max(int(math32.Floor(min(tri[0].y, tri[1].y, tri[2].y))), bounds.Min.Y)
	maxY := min(int(math32.Ceil(max(tri[0].y, tri[1].y, tri[2].y))), bounds.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}

	shade := func(y0, y1 int) {
		c.shadeRows(tri, area, prog, minX, maxX, y0, y1)
	}

	if c.pool == nil {
		shade(minY, maxY)
		return
	}

	rows := maxY - minY
	bands := c.pool.Workers() * 4
	step := max(1, (rows+bands-1)/bands)

	var wg sync.WaitGroup
	for y := minY; y < maxY; y += step {
		y0, y1 := y, min(y+step, maxY)
		wg.Add(1)
		job := RasterJob{Run: func() { shade(y0, y1) }, Done: &wg}
		// a full queue means every worker is busy; shade on this goroutine
		if !c.pool.SubmitJob(job) {
			shade(y0, y1)
			wg.Done()
		}
	}
	wg.Wait()
}

func (c *Context) shadeRows(tri [3]rasterVertex, area float32, prog *program, minX, maxX, y0, y1 int) {
	height := c.img.Bounds().Dy()
	inv := 1 / area

	for y := y0; y < y1; y++ {
		py := float32(y) + 0.5
		// window y grows upwards, image rows grow downwards
		row := c.img.PixOffset(0, height-1-y)
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5

			b0 := edge(tri[1], tri[2], px, py) * inv
			b1 := edge(tri[2], tri[0], px, py) * inv
			b2 := edge(tri[0], tri[1], px, py) * inv
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			varying := tri[0].varying.Mul(b0).
				Add(tri[1].varying.Mul(b1)).
				Add(tri[2].varying.Mul(b2))
			col := prog.fragment.Shade(varying, prog.uniforms)

			i := row + x*4
			c.img.Pix[i+0] = quantize(col[0])
			c.img.Pix[i+1] = quantize(col[1])
			c.img.Pix[i+2] = quantize(col[2])
			c.img.Pix[i+3] = quantize(col[3])
		}
	}
}

package softgl_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neo-background/internal/gfx"
	"neo-background/internal/gfx/softgl"
)

func TestRasterPoolRunsJobs(t *testing.T) {
	pool := softgl.NewRasterPool(3, 64)
	defer pool.Shutdown()
	assert.Equal(t, 3, pool.Workers())

	var ran atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		require.True(t, pool.SubmitJob(softgl.RasterJob{Run: func() { ran.Add(1) }, Done: &wg}))
	}
	wg.Wait()

	assert.Equal(t, int32(50), ran.Load())
}

func TestRasterPoolRejectsAfterShutdown(t *testing.T) {
	pool := softgl.NewRasterPool(1, 1)
	pool.Shutdown()

	assert.False(t, pool.SubmitJob(softgl.RasterJob{Run: func() {}}))
}

func TestRasterPoolSubmitJobWhenFull(t *testing.T) {
	pool := softgl.NewRasterPool(1, 1)
	defer pool.Shutdown()

	block := make(chan struct{})
	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	// occupy the worker, then fill the single queue slot
	require.True(t, pool.SubmitJob(softgl.RasterJob{Run: func() { close(started); <-block }, Done: &wg}))
	<-started
	assert.True(t, pool.SubmitJob(softgl.RasterJob{Run: func() {}, Done: &wg}))
	assert.False(t, pool.SubmitJob(softgl.RasterJob{Run: func() {}}))

	close(block)
	wg.Wait()
}

// Bands shaded by workers and bands that overflow the queue onto the drawing
// goroutine produce the same picture.
func TestPooledDrawMatchesInline(t *testing.T) {
	draw := func(opts ...softgl.Option) []byte {
		ctx := softgl.New(16, 16, testLibrary(), opts...)
		defer ctx.Close()
		u := setupQuad(t, ctx, -1, -1, 1, 1)
		ctx.Uniform1f(u, 0.5)
		ctx.DrawElements(gfx.Triangles, 6, gfx.UnsignedShort, 0)
		require.Equal(t, gfx.NoError, ctx.Err())
		return append([]byte(nil), ctx.Image().Pix...)
	}

	inline := draw()
	assert.Equal(t, inline, draw(softgl.WithWorkers(2)))
	for i := 3; i < len(inline); i += 4 {
		assert.Equal(t, uint8(255), inline[i])
	}
}

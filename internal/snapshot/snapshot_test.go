package snapshot_test

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"neo-background/internal/snapshot"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want snapshot.Format
	}{
		{"png", snapshot.PNG},
		{"PNG", snapshot.PNG},
		{".bmp", snapshot.BMP},
		{"tiff", snapshot.TIFF},
		{"tif", snapshot.TIFF},
	}
	for _, tt := range tests {
		got, err := snapshot.ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := snapshot.ParseFormat("gif")
	assert.Error(t, err)
}

func TestRenderIsDeterministic(t *testing.T) {
	opts := snapshot.Options{Width: 40, Height: 30}

	a, err := snapshot.Render(opts, 1250, 3000)
	require.NoError(t, err)
	b, err := snapshot.Render(opts, 1250, 3000)
	require.NoError(t, err)

	require.Len(t, a, 2)
	assert.Equal(t, a[0].Pix, b[0].Pix)
	assert.Equal(t, a[1].Pix, b[1].Pix)
	assert.NotEqual(t, a[0].Pix, a[1].Pix)
}

func TestRenderLoops(t *testing.T) {
	frames, err := snapshot.Render(snapshot.Options{Width: 32, Height: 32, Workers: 2}, 2500, 12500, 22500)
	require.NoError(t, err)

	assert.Equal(t, frames[0].Pix, frames[1].Pix)
	assert.Equal(t, frames[0].Pix, frames[2].Pix)
}

func TestRenderStartOffset(t *testing.T) {
	shifted, err := snapshot.Render(snapshot.Options{Width: 24, Height: 24, StartOffset: 500}, 2000)
	require.NoError(t, err)
	plain, err := snapshot.Render(snapshot.Options{Width: 24, Height: 24}, 2500)
	require.NoError(t, err)

	assert.Equal(t, plain[0].Pix, shifted[0].Pix)
}

func TestRenderScale(t *testing.T) {
	frames, err := snapshot.Render(snapshot.Options{Width: 40, Height: 20, Scale: 0.5}, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), frames[0].Bounds())
}

func TestRenderRejectsEmptySize(t *testing.T) {
	_, err := snapshot.Render(snapshot.Options{}, 0)
	assert.Error(t, err)
}

func TestEncodeFormats(t *testing.T) {
	frames, err := snapshot.Render(snapshot.Options{Width: 16, Height: 8}, 0)
	require.NoError(t, err)
	img := frames[0]

	decoders := map[snapshot.Format]func(*bytes.Reader) (image.Image, error){
		snapshot.PNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		snapshot.BMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		snapshot.TIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, snapshot.Encode(&buf, img, format))

			got, err := decode(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, img.Bounds(), got.Bounds())

			r, g, b, _ := got.At(3, 5).RGBA()
			wr, wg, wb, _ := img.At(3, 5).RGBA()
			assert.Equal(t, []uint32{wr, wg, wb}, []uint32{r, g, b})
		})
	}

	assert.Error(t, snapshot.Encode(&bytes.Buffer{}, img, "gif"))
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	times := []float64{0, 2500}

	frames, err := snapshot.Render(snapshot.Options{Width: 8, Height: 8}, times...)
	require.NoError(t, err)

	paths, err := snapshot.WriteFiles(dir, "bg", snapshot.PNG, frames, times)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "bg-000000.png"),
		filepath.Join(dir, "bg-002500.png"),
	}, paths)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	_, err = snapshot.WriteFiles(dir, "bg", snapshot.PNG, frames, times[:1])
	assert.Error(t, err)
}

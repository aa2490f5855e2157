// Package snapshot renders background frames offline and writes them as
// images, for golden-image checks and previews.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"neo-background/internal/dom"
	"neo-background/internal/element"
	"neo-background/internal/host/headless"
	"neo-background/internal/logging"
)

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ParseFormat accepts a format name in any case, with or without a
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case PNG, BMP, TIFF:
		return f, nil
	case "tif":
		return TIFF, nil
	}
	return "", fmt.Errorf("unknown image format %q", s)
}

// Options describes the frames to render.
type Options struct {
	Width  int
	Height int
	// Scale resamples each frame; 0 or 1 keeps the rendered size.
	Scale float64
	// Workers shades rows in parallel when above 1.
	Workers int
	// StartOffset is added to every timestamp, in milliseconds.
	StartOffset float64
}

// Render draws one frame per timestamp (elapsed milliseconds) through a
// <neo-background> element on a headless host.
func Render(opts Options, timestamps ...float64) ([]*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render: invalid size %dx%d", opts.Width, opts.Height)
	}

	host := headless.New(opts.Width, opts.Height, headless.WithWorkers(opts.Workers))
	defer host.Close()

	registry := dom.NewRegistry()
	cfg := element.Config{Width: opts.Width, Height: opts.Height, StartOffset: opts.StartOffset}
	if err := element.Define(registry, cfg); err != nil {
		return nil, err
	}
	node, err := dom.NewDocument(registry, host).Insert(element.Tag)
	if err != nil {
		return nil, err
	}
	el := node.(*element.Background)
	defer el.Stop()

	ready, ok := el.Outcome().(element.Ready)
	if !ok {
		return nil, errors.New("render: no graphics context")
	}
	if err := ready.Renderer.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	surface := host.Surfaces()[0]
	frames := make([]*image.RGBA, 0, len(timestamps))
	for _, ts := range timestamps {
		if host.Advance(ts) != 1 {
			return nil, fmt.Errorf("render: frame at %vms did not run", ts)
		}
		frames = append(frames, resample(surface.Image(), opts.Scale))
		logging.Logger().Debug("snapshot: rendered", "timestamp", ts)
	}
	return frames, nil
}

// resample returns a copy of src scaled by factor.
func resample(src *image.RGBA, factor float64) *image.RGBA {
	b := src.Bounds()
	if factor <= 0 || factor == 1 {
		dst := image.NewRGBA(b)
		copy(dst.Pix, src.Pix)
		return dst
	}

	w := max(1, int(float64(b.Dx())*factor+0.5))
	h := max(1, int(float64(b.Dy())*factor+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("unknown image format %q", format)
}

// FileName is the name WriteFiles gives the frame at timestamp.
func FileName(prefix string, timestamp float64, format Format) string {
	return fmt.Sprintf("%s-%06.0f.%s", prefix, timestamp, format)
}

// WriteFiles encodes frames[i] to dir/FileName(prefix, timestamps[i]) and
// returns the paths written.
func WriteFiles(dir, prefix string, format Format, frames []*image.RGBA, timestamps []float64) ([]string, error) {
	if len(frames) != len(timestamps) {
		return nil, fmt.Errorf("write: %d frames for %d timestamps", len(frames), len(timestamps))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	paths := make([]string, 0, len(frames))
	for i, img := range frames {
		path := filepath.Join(dir, FileName(prefix, timestamps[i], format))
		if err := writeFile(path, img, format); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, img image.Image, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("write %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

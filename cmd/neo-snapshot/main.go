// Command neo-snapshot renders background frames to image files without a
// GPU.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"neo-background/internal/config"
	"neo-background/internal/logging"
	"neo-background/internal/snapshot"
)

const (
	defaultWidth  = 640
	defaultHeight = 360
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	width := flag.Int("width", defaultWidth, "frame width")
	height := flag.Int("height", defaultHeight, "frame height")
	times := flag.String("times", "", "comma-separated elapsed milliseconds")
	format := flag.String("format", "", "png, bmp or tiff")
	dir := flag.String("dir", "", "output directory")
	prefix := flag.String("prefix", "neo-background", "file name prefix")
	scale := flag.Float64("scale", 0, "resample factor")
	workers := flag.Int("workers", 0, "raster goroutines")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath, cfg); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.Width == 0 {
		cfg.Width, cfg.Height = defaultWidth, defaultHeight
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "format":
			cfg.Snapshot.Format = *format
		case "dir":
			cfg.Snapshot.Dir = *dir
		case "scale":
			cfg.Snapshot.Scale = *scale
		case "workers":
			cfg.RasterWorkers = *workers
		}
	})
	if *times != "" {
		parsed, err := parseTimes(*times)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Snapshot.Times = parsed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})))

	imgFormat, err := snapshot.ParseFormat(cfg.Snapshot.Format)
	if err != nil {
		log.Fatal(err)
	}

	frames, err := snapshot.Render(snapshot.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Scale:       cfg.Snapshot.Scale,
		Workers:     cfg.RasterWorkers,
		StartOffset: cfg.StartOffset,
	}, cfg.Snapshot.Times...)
	if err != nil {
		log.Fatal(err)
	}

	paths, err := snapshot.WriteFiles(cfg.Snapshot.Dir, *prefix, imgFormat, frames, cfg.Snapshot.Times)
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range paths {
		log.Printf("wrote %s", p)
	}
}

func parseTimes(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

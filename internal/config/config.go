package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings shared by the viewer, the snapshot tool and the
// browser entry. Zero width/height mean "use the host viewport".
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// FPSLimit caps the desktop frame rate; 0 means uncapped (vsync only).
	FPSLimit int `toml:"fps_limit"`
	// StartOffset is added to every frame timestamp, in milliseconds.
	StartOffset float64 `toml:"start_offset"`
	// RasterWorkers is the number of goroutines the software renderer
	// shades with; 0 or 1 shades inline.
	RasterWorkers int    `toml:"raster_workers"`
	LogLevel      string `toml:"log_level"`

	Snapshot SnapshotConfig `toml:"snapshot"`
}

// SnapshotConfig describes the frames written by neo-snapshot.
type SnapshotConfig struct {
	// Times are elapsed milliseconds to render.
	Times  []float64 `toml:"times"`
	Format string    `toml:"format"`
	Dir    string    `toml:"dir"`
	// Scale resamples the rendered frame; 1 keeps the native size.
	Scale float64 `toml:"scale"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		RasterWorkers: 4,
		LogLevel:      "info",
		Snapshot: SnapshotConfig{
			Times:  []float64{0, 2500, 5000, 7500},
			Format: "png",
			Dir:    ".",
			Scale:  1,
		},
	}
}

// Load reads a TOML file over base. Keys missing from the file keep their
// value from base.
func Load(path string, base Config) (Config, error) {
	cfg := base

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("parse config %s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Width < 0 || c.Height < 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must not be negative", c.Width, c.Height))
	}
	if (c.Width == 0) != (c.Height == 0) {
		errs = append(errs, fmt.Errorf("width and height must be set together"))
	}
	if c.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps_limit %d must not be negative", c.FPSLimit))
	}
	if c.RasterWorkers < 0 {
		errs = append(errs, fmt.Errorf("raster_workers %d must not be negative", c.RasterWorkers))
	}
	switch strings.ToLower(c.Snapshot.Format) {
	case "png", "bmp", "tiff":
	default:
		errs = append(errs, fmt.Errorf("snapshot format %q is not one of png, bmp, tiff", c.Snapshot.Format))
	}
	if c.Snapshot.Scale <= 0 {
		errs = append(errs, fmt.Errorf("snapshot scale %v must be positive", c.Snapshot.Scale))
	}
	return errors.Join(errs...)
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

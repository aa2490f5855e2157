// Command neo-background shows the animated background in a desktop window.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/xlab/closer"

	"neo-background/internal/background"
	"neo-background/internal/config"
	"neo-background/internal/dom"
	"neo-background/internal/element"
	"neo-background/internal/host/desktop"
	"neo-background/internal/logging"
)

func init() {
	// glfw and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	configPath := flag.String("config", "", "TOML config file")
	width := flag.Int("width", 0, "window width (0 = monitor width)")
	height := flag.Int("height", 0, "window height (0 = monitor height)")
	fpsLimit := flag.Int("fps", 0, "frame rate cap (0 = uncapped)")
	startOffset := flag.Float64("start-offset", background.NativeStartSeconds*1000, "clock offset in milliseconds")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	vsync := flag.Bool("vsync", true, "wait for the display on every swap")
	flag.Parse()

	base := config.Default()
	base.StartOffset = *startOffset
	cfg := base
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath, base); err != nil {
			closer.Fatalln(err)
		}
	}

	// flags given on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "fps":
			cfg.FPSLimit = *fpsLimit
		case "start-offset":
			cfg.StartOffset = *startOffset
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		closer.Fatalln(err)
	}

	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})))
	cfg.Apply()

	host, err := desktop.New(desktop.Options{Width: cfg.Width, Height: cfg.Height, VSync: *vsync})
	if err != nil {
		closer.Fatalln(err)
	}

	registry := dom.NewRegistry()
	if err := element.Define(registry, element.Config{StartOffset: cfg.StartOffset}); err != nil {
		closer.Fatalln(err)
	}
	node, err := dom.NewDocument(registry, host).Insert(element.Tag)
	if err != nil {
		closer.Fatalln(err)
	}
	el := node.(*element.Background)
	if _, ok := el.Outcome().(element.Unavailable); ok {
		log.Printf("no OpenGL context, the window stays blank")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-done
	})

	if err := host.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("frame loop: %v", err)
	}

	el.Stop()
	host.Close()
	close(done)
}

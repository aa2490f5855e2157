//go:build js && wasm

// Command neo-background-wasm defines the <neo-background> element in a web
// page and mounts every instance, including ones inserted after startup.
package main

import (
	"log"
	"log/slog"
	"os"

	"neo-background/internal/dom"
	"neo-background/internal/element"
	"neo-background/internal/host/browser"
	"neo-background/internal/logging"
)

func main() {
	// stdout is the browser console
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	registry := dom.NewRegistry()
	if err := element.Define(registry, element.Config{}); err != nil {
		log.Fatal(err)
	}

	// mounts the nodes present now and any inserted later
	browser.Observe(browser.NewMounter(registry, element.Tag))

	// frames are driven by requestAnimationFrame callbacks
	select {}
}

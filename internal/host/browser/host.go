//go:build js && wasm

// Package browser hosts elements in a web page. Each element mounts a
// <canvas> under its DOM node and frames come from the page's
// requestAnimationFrame.
package browser

import (
	"sync"
	"syscall/js"

	"neo-background/internal/dom"
	"neo-background/internal/frame"
	"neo-background/internal/gfx"
	"neo-background/internal/gfx/webgl"
	"neo-background/internal/logging"
)

// Host implements dom.Host for one mount node.
type Host struct {
	mount    js.Value
	window   js.Value
	document js.Value

	mu        sync.Mutex
	callbacks map[frame.ID]js.Func
}

var _ dom.Host = (*Host)(nil)

// New returns a host that appends surfaces to mount.
func New(mount js.Value) *Host {
	return &Host{
		mount:     mount,
		window:    js.Global(),
		document:  js.Global().Get("document"),
		callbacks: make(map[frame.ID]js.Func),
	}
}

// Viewport returns the document element's client size.
func (h *Host) Viewport() (int, int) {
	root := h.document.Get("documentElement")
	return root.Get("clientWidth").Int(), root.Get("clientHeight").Int()
}

func (h *Host) NewSurface(width, height int) dom.Surface {
	canvas := h.document.Call("createElement", "canvas")
	canvas.Set("width", width)
	canvas.Set("height", height)
	// the canvas fills its mount node, whatever the pixel size
	style := canvas.Get("style")
	style.Set("width", "inherit")
	style.Set("height", "inherit")
	h.mount.Call("appendChild", canvas)

	s := &surface{canvas: canvas, width: width, height: height}
	if ctx, ok := webgl.New(canvas); ok {
		s.ctx = ctx
	} else {
		logging.Logger().Warn("browser: webgl unavailable")
	}
	return s
}

func (h *Host) RequestAnimationFrame(cb frame.Callback) frame.ID {
	h.mu.Lock()
	defer h.mu.Unlock()

	var id frame.ID
	var fn js.Func
	fn = js.FuncOf(func(_ js.Value, args []js.Value) any {
		h.mu.Lock()
		delete(h.callbacks, id)
		h.mu.Unlock()
		fn.Release()

		cb(args[0].Float())
		return nil
	})

	id = frame.ID(h.window.Call("requestAnimationFrame", fn).Int())
	h.callbacks[id] = fn
	return id
}

func (h *Host) CancelAnimationFrame(id frame.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	fn, ok := h.callbacks[id]
	if !ok {
		return
	}
	h.window.Call("cancelAnimationFrame", int(id))
	delete(h.callbacks, id)
	fn.Release()
}

type surface struct {
	canvas js.Value
	width  int
	height int
	ctx    *webgl.Context
}

func (s *surface) Size() (int, int) {
	return s.width, s.height
}

func (s *surface) Context() gfx.Context {
	if s.ctx == nil {
		return nil
	}
	return s.ctx
}

// Package headless is an in-memory dom.Host. Surfaces are drawn by the
// software renderer and frames advance only when the caller says so, which
// makes it the host for tests and offline rendering.
package headless

import (
	"image"
	"sync"

	"neo-background/internal/background"
	"neo-background/internal/dom"
	"neo-background/internal/frame"
	"neo-background/internal/gfx"
	"neo-background/internal/gfx/softgl"
)

// ContextFactory builds the graphics context for a new surface.
type ContextFactory func(width, height int) gfx.Context

// Option configures a Host.
type Option func(*Host)

// WithoutGPU makes every surface report no graphics context.
func WithoutGPU() Option {
	return func(h *Host) { h.noGPU = true }
}

// WithContextFactory replaces the software renderer, e.g. with a
// gfxtest.Recorder.
func WithContextFactory(f ContextFactory) Option {
	return func(h *Host) { h.factory = f }
}

// WithLibrary adds shader stages to the ones software surfaces can run.
// Stages in lib replace background stages with identical source.
func WithLibrary(lib softgl.Library) Option {
	return func(h *Host) { h.lib = h.lib.Merge(lib) }
}

// WithWorkers shades software surfaces on n goroutines.
func WithWorkers(n int) Option {
	return func(h *Host) { h.workers = n }
}

// Host implements dom.Host.
type Host struct {
	queue  *frame.Queue
	width  int
	height int

	noGPU   bool
	factory ContextFactory
	lib     softgl.Library
	workers int

	mu            sync.Mutex
	surfaces      []*Surface
	viewportReads int
}

var _ dom.Host = (*Host)(nil)

// New returns a host whose viewport is width×height. Software surfaces can
// always draw the background scene.
func New(width, height int, opts ...Option) *Host {
	h := &Host{
		queue:  frame.NewQueue(),
		width:  width,
		height: height,
		lib:    background.SoftwareLibrary(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) Viewport() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.viewportReads++
	return h.width, h.height
}

// ViewportReads returns how many times Viewport was called.
func (h *Host) ViewportReads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.viewportReads
}

// Resize changes what later Viewport calls return.
func (h *Host) Resize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = width, height
}

func (h *Host) NewSurface(width, height int) dom.Surface {
	s := &Surface{width: width, height: height}
	switch {
	case h.noGPU:
	case h.factory != nil:
		s.ctx = h.factory(width, height)
	default:
		s.soft = softgl.New(width, height, h.lib, softgl.WithWorkers(h.workers))
		s.ctx = s.soft
	}

	h.mu.Lock()
	h.surfaces = append(h.surfaces, s)
	h.mu.Unlock()
	return s
}

// Surfaces returns every surface created so far.
func (h *Host) Surfaces() []*Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Surface(nil), h.surfaces...)
}

func (h *Host) RequestAnimationFrame(cb frame.Callback) frame.ID {
	return h.queue.RequestAnimationFrame(cb)
}

func (h *Host) CancelAnimationFrame(id frame.ID) {
	h.queue.CancelAnimationFrame(id)
}

// Advance runs one display refresh at timestamp milliseconds and returns
// how many callbacks ran.
func (h *Host) Advance(timestamp float64) int {
	return h.queue.Flush(timestamp)
}

// Pending returns the number of frame requests waiting for Advance.
func (h *Host) Pending() int {
	return h.queue.Len()
}

// Close releases the software renderers' workers.
func (h *Host) Close() {
	for _, s := range h.Surfaces() {
		if s.soft != nil {
			s.soft.Close()
		}
	}
}

// Surface is a headless dom.Surface.
type Surface struct {
	width  int
	height int
	ctx    gfx.Context
	soft   *softgl.Context
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

func (s *Surface) Context() gfx.Context {
	return s.ctx
}

// Image returns the pixels of a software surface, or nil.
func (s *Surface) Image() *image.RGBA {
	if s.soft == nil {
		return nil
	}
	return s.soft.Image()
}

// Software returns the software context backing the surface, or nil.
func (s *Surface) Software() *softgl.Context {
	return s.soft
}

// Package element implements the <neo-background> custom element: it sizes
// a surface, acquires a graphics context for it and keeps the background
// scene animating, one frame per host refresh.
package element

import (
	"sync"
	"sync/atomic"
	"time"

	"neo-background/internal/background"
	"neo-background/internal/dom"
	"neo-background/internal/frame"
	"neo-background/internal/gfx"
	"neo-background/internal/logging"
	"neo-background/internal/profiling"
)

// Tag is the element's registered name.
const Tag = "neo-background"

// ClearGray is the channel value of the initial clear, 12/255.
const ClearGray = float32(12.0 / 255.0)

// slowFrame is the frame time above which a frame is logged.
const slowFrame = 16 * time.Millisecond

// Config fixes the element's size and clock.
type Config struct {
	// Width and Height size the surface. When either is 0 the host
	// viewport is read once, at attach time.
	Width  int
	Height int
	// StartOffset is added to every frame timestamp, in milliseconds.
	StartOffset float64
}

// State is the element's lifecycle position.
type State int

const (
	Unattached State = iota
	// Inert is terminal: no context could be acquired.
	Inert
	Running
	// Stopped is terminal: Stop was called.
	Stopped
)

func (s State) String() string {
	switch s {
	case Unattached:
		return "unattached"
	case Inert:
		return "inert"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Outcome is the result of attaching: Ready or Unavailable.
type Outcome interface {
	isOutcome()
}

// Ready means the scene is set up and frames are scheduled.
type Ready struct {
	Renderer *background.Renderer
}

// Unavailable means nothing will be drawn and no frames are requested:
// the surface has no graphics context, or the element was stopped before
// it was attached.
type Unavailable struct{}

func (Ready) isOutcome()       {}
func (Unavailable) isOutcome() {}

// Background is the <neo-background> element.
type Background struct {
	cfg Config

	mu       sync.Mutex
	state    State
	outcome  Outcome
	host     dom.Host
	surface  dom.Surface
	renderer *background.Renderer
	pending  frame.ID
	frames   int

	// running is checked before painting and before re-scheduling.
	running atomic.Bool
}

var _ dom.Element = (*Background)(nil)

// New returns an unattached element.
func New(cfg Config) *Background {
	return &Background{cfg: cfg}
}

// Define registers the element in r under Tag. Every element created from
// r shares cfg.
func Define(r *dom.Registry, cfg Config) error {
	return r.Define(Tag, func() dom.Element { return New(cfg) })
}

func (b *Background) Tag() string {
	return Tag
}

func (b *Background) Connected(host dom.Host) {
	b.Attach(host)
}

// Attach sets the element up on host and reports the outcome. Only the
// first call does anything; later calls return the first outcome.
func (b *Background) Attach(host dom.Host) Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Unattached {
		return b.outcome
	}
	b.host = host

	width, height := b.cfg.Width, b.cfg.Height
	if width == 0 || height == 0 {
		width, height = host.Viewport()
	}

	b.surface = host.NewSurface(width, height)
	ctx := b.surface.Context()
	if ctx == nil {
		logging.Logger().Warn("neo-background: no graphics context, staying inert",
			"width", width, "height", height)
		b.state = Inert
		b.outcome = Unavailable{}
		return b.outcome
	}

	ctx.Viewport(0, 0, width, height)
	ctx.ClearColor(ClearGray, ClearGray, ClearGray, 1)
	ctx.Clear(gfx.ColorBufferBit)

	b.renderer = background.New(ctx)
	b.state = Running
	b.outcome = Ready{Renderer: b.renderer}
	b.running.Store(true)
	b.pending = host.RequestAnimationFrame(b.frame)

	logging.Logger().Info("neo-background: attached", "width", width, "height", height)
	return b.outcome
}

func (b *Background) frame(timestamp float64) {
	if !b.running.Load() {
		return
	}

	start := time.Now()
	done := profiling.Track("element.frame")
	b.renderer.UpdateTime(timestamp + b.cfg.StartOffset)
	b.renderer.Draw()
	done()

	b.mu.Lock()
	b.frames++
	if b.running.Load() {
		b.pending = b.host.RequestAnimationFrame(b.frame)
	}
	b.mu.Unlock()

	if d := time.Since(start); d > slowFrame {
		logging.Logger().Debug("neo-background: slow frame",
			"duration", d, "timestamp", timestamp, "top", profiling.TopN(3))
	}
}

// Stop ends the animation: the pending frame is cancelled and no further
// frames are requested. Stopping an unattached element keeps it from ever
// starting; a later Attach reports Unavailable. Stop is idempotent and safe to call from any goroutine.
func (b *Background) Stop() {
	b.running.Store(false)

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Running:
		b.host.CancelAnimationFrame(b.pending)
		b.pending = 0
		b.state = Stopped
	case Unattached:
		b.state = Stopped
		b.outcome = Unavailable{}
	}
}

// State returns the lifecycle state.
func (b *Background) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Outcome returns the attach outcome. It is nil until Attach or Stop runs.
func (b *Background) Outcome() Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.outcome
}

// Surface returns the element's surface, or nil before Attach.
func (b *Background) Surface() dom.Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface
}

// Frames returns how many frames have been painted.
func (b *Background) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

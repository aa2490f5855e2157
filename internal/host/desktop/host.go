// Package desktop hosts elements in a glfw window with an OpenGL 4.1 core
// context. The window is the element's surface and the frame loop runs on
// the calling thread, which must be the locked main thread.
package desktop

import (
	"context"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"neo-background/internal/dom"
	"neo-background/internal/frame"
	"neo-background/internal/gfx"
	"neo-background/internal/gfx/glctx"
	"neo-background/internal/logging"
)

// Options configures the window.
type Options struct {
	// Width and Height size the window. Zero uses the primary monitor's
	// current video mode.
	Width  int
	Height int
	Title  string
	// VSync waits for the display on every buffer swap.
	VSync bool
}

// Host implements dom.Host on a single window.
type Host struct {
	window *glfw.Window
	gl     *glctx.Context
	queue  *frame.Queue
	loop   *frame.Loop

	width  int
	height int
}

var _ dom.Host = (*Host)(nil)

// New initializes glfw and opens the window. A missing OpenGL driver is not
// an error: the host then hands out surfaces without a context.
func New(opts Options) (*Host, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	width, height := opts.Width, opts.Height
	if width == 0 || height == 0 {
		mode := glfw.GetPrimaryMonitor().GetVideoMode()
		width, height = mode.Width, mode.Height
	}
	if opts.Title == "" {
		opts.Title = "neo-background"
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(width, height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	h := &Host{
		window: window,
		queue:  frame.NewQueue(),
	}
	h.loop = frame.NewLoop(h.queue)
	// the surface is the framebuffer, which differs from the window size
	// on high-DPI displays
	h.width, h.height = window.GetFramebufferSize()

	if ctx, err := glctx.New(); err != nil {
		logging.Logger().Warn("desktop: OpenGL unavailable", "error", err)
	} else {
		h.gl = ctx
		logging.Logger().Info("desktop: OpenGL ready", "version", ctx.Version(),
			"width", h.width, "height", h.height)
	}

	return h, nil
}

func (h *Host) Viewport() (int, int) {
	return h.width, h.height
}

// NewSurface returns the window's framebuffer. Every surface shares it.
func (h *Host) NewSurface(width, height int) dom.Surface {
	return &surface{host: h, width: width, height: height}
}

func (h *Host) RequestAnimationFrame(cb frame.Callback) frame.ID {
	return h.queue.RequestAnimationFrame(cb)
}

func (h *Host) CancelAnimationFrame(id frame.ID) {
	h.queue.CancelAnimationFrame(id)
}

// Run drives frames until the window closes or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	return h.loop.Run(ctx, func() bool {
		h.window.SwapBuffers()
		glfw.PollEvents()
		return !h.window.ShouldClose()
	})
}

// Close destroys the window and terminates glfw.
func (h *Host) Close() {
	if h.gl != nil {
		h.gl.Close()
	}
	h.window.Destroy()
	glfw.Terminate()
}

type surface struct {
	host   *Host
	width  int
	height int
}

func (s *surface) Size() (int, int) {
	return s.width, s.height
}

func (s *surface) Context() gfx.Context {
	if s.host.gl == nil {
		return nil
	}
	return s.host.gl
}

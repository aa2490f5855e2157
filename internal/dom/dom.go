// Package dom models the parts of a document tree an animated surface
// element needs: a registry of element constructors, the host that owns
// surfaces and frame scheduling, and a document that connects elements to
// that host.
package dom

import (
	"neo-background/internal/frame"
	"neo-background/internal/gfx"
)

// Element is a custom element instance.
type Element interface {
	// Tag is the name the element was registered under.
	Tag() string
	// Connected is called once the element is attached to a host tree.
	Connected(host Host)
}

// Constructor creates a fresh, unattached element.
type Constructor func() Element

// Host is the environment an element is attached to.
type Host interface {
	frame.Scheduler

	// Viewport returns the size of the visible area in pixels.
	Viewport() (width, height int)
	// NewSurface creates a drawing surface of the given size and attaches
	// it as a child of the element's mount point.
	NewSurface(width, height int) Surface
}

// Surface is a drawable child node.
type Surface interface {
	Size() (width, height int)
	// Context returns the surface's graphics context, or nil when the
	// environment cannot provide one.
	Context() gfx.Context
}

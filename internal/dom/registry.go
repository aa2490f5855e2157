package dom

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

var (
	ErrAlreadyDefined = errors.New("element already defined")
	ErrInvalidTag     = errors.New("invalid custom element name")
	ErrUndefined      = errors.New("element not defined")
)

// nameChar is the HTML PCENChar production minus the hyphen: lowercase
// ASCII letters, digits, '.', '_' and most non-ASCII code points.
const nameChar = `[a-z0-9._\x{B7}\x{C0}-\x{D6}\x{D8}-\x{F6}\x{F8}-\x{37D}\x{37F}-\x{1FFF}` +
	`\x{200C}-\x{200D}\x{203F}-\x{2040}\x{2070}-\x{218F}\x{2C00}-\x{2FEF}\x{3001}-\x{D7FF}` +
	`\x{F900}-\x{FDCF}\x{FDF0}-\x{FFFD}\x{10000}-\x{EFFFF}]`

// tagPattern accepts names that start with a lowercase ASCII letter and
// contain at least one hyphen.
var tagPattern = regexp.MustCompile(`^[a-z]` + nameChar + `*(-` + nameChar + `*)+$`)

// reserved names already carry meaning in SVG and MathML.
var reserved = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// ValidTag reports whether tag can name a custom element.
func ValidTag(tag string) bool {
	return tagPattern.MatchString(tag) && !reserved[tag]
}

// Registry maps tag names to constructors. It is owned by the application
// root and passed to whatever needs to create elements.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Define registers ctor under tag. A tag can be defined once.
func (r *Registry) Define(tag string, ctor Constructor) error {
	if !ValidTag(tag) {
		return fmt.Errorf("define %q: %w", tag, ErrInvalidTag)
	}
	if ctor == nil {
		return fmt.Errorf("define %q: nil constructor", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ctors[tag]; ok {
		return fmt.Errorf("define %q: %w", tag, ErrAlreadyDefined)
	}
	r.ctors[tag] = ctor
	return nil
}

// Lookup returns the constructor registered under tag.
func (r *Registry) Lookup(tag string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[tag]
	return ctor, ok
}

// Create constructs a new element for tag.
func (r *Registry) Create(tag string) (Element, error) {
	ctor, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("create %q: %w", tag, ErrUndefined)
	}
	return ctor(), nil
}

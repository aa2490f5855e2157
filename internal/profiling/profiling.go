// Package profiling accumulates per-frame CPU time by name, so a slow frame
// can report where its time went.
package profiling

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Profiler accumulates named durations for the current frame. The zero
// value is ready to use and safe for concurrent use.
type Profiler struct {
	mu     sync.Mutex
	totals map[string]time.Duration
}

func (p *Profiler) add(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.totals == nil {
		p.totals = make(map[string]time.Duration)
	}
	p.totals[name] += d
}

// Track starts a timer for name; calling the returned func stops it.
// Usage: defer p.Track("element.frame")()
func (p *Profiler) Track(name string) func() {
	start := time.Now()
	return func() { p.add(name, time.Since(start)) }
}

// Reset clears the totals.
func (p *Profiler) Reset() {
	p.mu.Lock()
	clear(p.totals)
	p.mu.Unlock()
}

// Snapshot returns a copy of the totals.
func (p *Profiler) Snapshot() map[string]time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return maps.Clone(p.totals)
}

// Frame is the process-wide profiler the frame loop resets every frame.
var Frame = &Profiler{}

// Track times name on Frame.
func Track(name string) func() { return Frame.Track(name) }

// ResetFrame clears Frame. The frame loop calls it before each frame.
func ResetFrame() { Frame.Reset() }

// Snapshot returns a copy of Frame's totals.
func Snapshot() map[string]time.Duration { return Frame.Snapshot() }

// Entry is one named total.
type Entry struct {
	Name string
	Dur  time.Duration
}

// Top returns the n largest totals, longest first. Ties sort by name.
func (p *Profiler) Top(n int) []Entry {
	ss := p.Snapshot()
	list := make([]Entry, 0, len(ss))
	for k, v := range ss {
		list = append(list, Entry{Name: k, Dur: v})
	}
	slices.SortFunc(list, func(a, b Entry) int {
		if c := cmp.Compare(b.Dur, a.Dur); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return list[:min(max(n, 0), len(list))]
}

// TopN formats the n largest totals, e.g. "element.frame:4.2ms, softgl.draw:2ms".
func (p *Profiler) TopN(n int) string {
	top := p.Top(n)
	parts := make([]string, len(top))
	for i, e := range top {
		parts[i] = e.Name + ":" + formatMs(e.Dur)
	}
	return strings.Join(parts, ", ")
}

// TopN formats Frame's n largest totals.
func TopN(n int) string { return Frame.TopN(n) }

// formatMs prints d in milliseconds with at most one decimal.
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	return strconv.FormatFloat(float64(int64(ms*10+1e-4))/10, 'f', -1, 64) + "ms"
}

package frame

import (
	"context"
	"time"

	"neo-background/internal/config"
	"neo-background/internal/profiling"
)

// Loop drives a Queue from a host that has no compositor callback of its
// own, such as a desktop window.
type Loop struct {
	Queue   *Queue
	Limiter *Limiter

	start time.Time
}

// NewLoop paces q with a fresh Limiter.
func NewLoop(q *Queue) *Loop {
	return &Loop{Queue: q, Limiter: NewLimiter()}
}

// Run paces frames to config.GetFPSLimit(), read every frame so a change
// takes effect at once. Each frame flushes the queue with the milliseconds
// elapsed since Run started, then calls present. It returns nil when
// present reports false and ctx.Err() when ctx is done.
func (l *Loop) Run(ctx context.Context, present func() bool) error {
	l.start = time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.Limiter != nil {
			l.Limiter.Wait(Interval(config.GetFPSLimit()))
		}

		profiling.ResetFrame()
		l.Queue.Flush(l.Elapsed())

		if !present() {
			return nil
		}
	}
}

// Elapsed returns the current frame timestamp in milliseconds.
func (l *Loop) Elapsed() float64 {
	return float64(time.Since(l.start).Microseconds()) / 1000
}

package frame

import "time"

// spinWindow is how close to the deadline the limiter stops sleeping and
// spins; sleeps overshoot by about this much.
const spinWindow = 200 * time.Microsecond

// Interval converts a frames-per-second cap to a frame interval. A cap of 0
// or less means uncapped and yields 0.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Limiter paces frames to a fixed interval on an absolute schedule, so
// sleep jitter does not accumulate.
type Limiter struct {
	deadline time.Time
}

// NewLimiter creates a limiter with no schedule yet.
func NewLimiter() *Limiter {
	return &Limiter{}
}

// Wait blocks until the next frame of an interval-spaced schedule is due.
// An interval of 0 returns at once and drops the schedule. A frame more
// than one interval late restarts the schedule from now instead of
// rushing to catch up.
func (l *Limiter) Wait(interval time.Duration) {
	if interval <= 0 {
		l.deadline = time.Time{}
		return
	}

	now := time.Now()
	switch {
	case l.deadline.IsZero():
		l.deadline = now.Add(interval)
	case now.Sub(l.deadline) > interval:
		l.deadline = now.Add(interval)
	default:
		l.deadline = l.deadline.Add(interval)
	}

	sleepUntil(l.deadline)
}

// sleepUntil sleeps most of the way to deadline and spins the rest.
func sleepUntil(deadline time.Time) {
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}
}

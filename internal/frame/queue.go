// Package frame schedules per-refresh callbacks the way a browser's
// requestAnimationFrame does, for hosts that have no such primitive.
package frame

import "sync"

// ID identifies a pending request. Zero is never issued.
type ID uint64

// Callback receives the frame timestamp in milliseconds.
type Callback func(timestamp float64)

// Scheduler requests a callback before the next repaint.
type Scheduler interface {
	RequestAnimationFrame(cb Callback) ID
	CancelAnimationFrame(id ID)
}

type request struct {
	id        ID
	cb        Callback
	cancelled bool
}

// Queue holds callbacks until the host flushes it once per refresh.
// Callbacks requested while a flush is running wait for the next flush.
type Queue struct {
	mu      sync.Mutex
	last    ID
	pending []*request
	// batch is the flush in progress
	batch []*request
}

var _ Scheduler = (*Queue)(nil)

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) RequestAnimationFrame(cb Callback) ID {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.last++
	q.pending = append(q.pending, &request{id: q.last, cb: cb})
	return q.last
}

// CancelAnimationFrame drops a request that has not run yet, including one
// later in the batch being flushed. Unknown or already run ids are ignored.
func (q *Queue) CancelAnimationFrame(id ID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for _, r := range q.batch {
		if r.id == id {
			r.cancelled = true
			return
		}
	}
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs every callback pending when it was called, in request order,
// and returns how many ran. Flush must not be called from a callback.
func (q *Queue) Flush(timestamp float64) int {
	q.mu.Lock()
	q.batch, q.pending = q.pending, nil
	batch := q.batch
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.batch = nil
		q.mu.Unlock()
	}()

	ran := 0
	for _, r := range batch {
		q.mu.Lock()
		cancelled := r.cancelled
		q.mu.Unlock()
		if cancelled {
			continue
		}
		r.cb(timestamp)
		ran++
	}
	return ran
}

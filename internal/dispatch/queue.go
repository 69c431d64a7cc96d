package dispatch

import (
	"sync"

	"github.com/tessaro/storefront/internal/action"
)

// actionQueue is a thread-safe FIFO queue of pending actions.
//
// Unbounded: UI surfaces may enqueue bursts (e.g. restoring a saved cart)
// without blocking. Thread-safety covers external producers while the Run
// loop dequeues; in practice most usage is single-threaded.
//
// A buffered signal channel enables context-aware waiting in the Run loop.
type actionQueue struct {
	mu      sync.Mutex
	pending []action.Action
	closed  bool
	signal  chan struct{}
}

func newActionQueue() *actionQueue {
	return &actionQueue{
		pending: make([]action.Action, 0, 32),
		signal:  make(chan struct{}, 1),
	}
}

// Enqueue appends an action. Safe from any goroutine.
// Returns false if the queue has been closed.
func (q *actionQueue) Enqueue(a action.Action) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.pending = append(q.pending, a)

	// Non-blocking signal; the buffer of 1 coalesces repeats.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue pops the front action without blocking.
func (q *actionQueue) TryDequeue() (action.Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil, false
	}
	a := q.pending[0]

	// Nil the slot so the backing array does not retain the action.
	q.pending[0] = nil
	if len(q.pending) == 1 {
		q.pending = q.pending[:0]
	} else {
		q.pending = q.pending[1:]
	}
	return a, true
}

// Wait returns a channel that signals when actions may be available.
// Select on it together with ctx.Done() to avoid hanging on shutdown.
func (q *actionQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of pending actions.
func (q *actionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops accepting actions and wakes any waiters.
func (q *actionQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}

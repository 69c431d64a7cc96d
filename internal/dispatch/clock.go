package dispatch

import "sync/atomic"

// Clock is a monotonic logical clock for action ordering.
//
// Every accepted action is stamped with a strictly increasing seq number.
// Logical time, not wall time, orders the journal: replay reproduces the
// identical sequence regardless of when it runs.
//
// Thread-safety: safe for concurrent use, though the single-writer loop
// means one goroutine normally calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
// Used to resume dispatching on top of an existing journal.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and advances the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}

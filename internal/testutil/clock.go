package testutil

import (
	"sync"
	"time"
)

// FrozenClock is a wall clock for tests that only moves when told to.
//
// Handing its Now method to the dispatcher pins every journaled applied_at
// timestamp, so the same scenario produces byte-identical traces on every run.
//
// Thread-safety: all methods are safe for concurrent use.
type FrozenClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFrozenClock creates a clock frozen at the given instant.
// The instant is normalized to UTC so serialized timestamps are stable
// regardless of the host timezone.
func NewFrozenClock(at time.Time) *FrozenClock {
	return &FrozenClock{now: at.UTC()}
}

// Now returns the current frozen instant.
func (c *FrozenClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new instant.
func (c *FrozenClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

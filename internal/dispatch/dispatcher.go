// Package dispatch hosts the reducer behind a single-writer event loop.
//
// UI surfaces and the CLI submit actions with Enqueue (or apply them
// synchronously with Dispatch); the Run loop applies them one at a time, so
// each action is fully reduced before the next is processed and no two
// mutations ever interleave against the same state snapshot. Readers take
// consistent snapshots with State().
//
// The dispatcher is the impure boundary around the pure reducer: it stamps
// freshly created entities with IDs and wall-clock timestamps before
// reducing, so the reducer itself never reads a clock or mints an ID and
// journal replay reproduces identical state.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tessaro/storefront/internal/action"
	"github.com/tessaro/storefront/internal/state"
	"github.com/tessaro/storefront/internal/store"
)

// Subscriber is notified after each applied action with the resulting state.
// Called on the dispatch goroutine: keep it fast and never call back into
// the dispatcher from inside it.
type Subscriber func(st state.State, a action.Action)

// Dispatcher owns the state tree and applies actions in FIFO order.
//
// Thread-safety model:
//   - Enqueue(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - Dispatch(): serialized internally; safe from any goroutine
//   - State(): safe from any goroutine, returns a consistent snapshot
type Dispatcher struct {
	mu      sync.RWMutex
	current state.State

	journal *store.Store // nil: in-memory only
	clock   *Clock
	ids     TokenGenerator
	now     func() time.Time
	queue   *actionQueue
	subs    []Subscriber

	// applyMu serializes Dispatch calls with the Run loop so there is
	// exactly one reduce-then-journal in flight at a time.
	applyMu sync.Mutex
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithJournal persists every accepted action to the given store.
func WithJournal(j *store.Store) Option {
	return func(d *Dispatcher) { d.journal = j }
}

// WithClock sets the logical clock, e.g. resumed from a journal's last
// sequence number.
func WithClock(c *Clock) Option {
	return func(d *Dispatcher) { d.clock = c }
}

// WithNow overrides the wall-clock source. Tests use a fixed time for
// deterministic order timestamps.
func WithNow(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithInitialState starts from a pre-built state instead of state.New(),
// e.g. the result of a journal replay.
func WithInitialState(st state.State) Option {
	return func(d *Dispatcher) { d.current = st }
}

// WithSubscriber registers a post-apply observer.
func WithSubscriber(sub Subscriber) Option {
	return func(d *Dispatcher) { d.subs = append(d.subs, sub) }
}

// New creates a Dispatcher with the given ID generator.
func New(ids TokenGenerator, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		current: state.New(),
		clock:   NewClock(),
		ids:     ids,
		now:     time.Now,
		queue:   newActionQueue(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resume opens a dispatcher on top of an existing journal: the state tree
// is rebuilt by replay and the clock continues from the last journaled
// sequence number.
func Resume(ctx context.Context, j *store.Store, ids TokenGenerator, opts ...Option) (*Dispatcher, error) {
	st, err := j.Replay(ctx)
	if err != nil {
		return nil, fmt.Errorf("resume dispatcher: %w", err)
	}
	lastSeq, err := j.LastSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("resume dispatcher: %w", err)
	}

	base := []Option{
		WithJournal(j),
		WithClock(NewClockAt(lastSeq)),
		WithInitialState(st),
	}
	return New(ids, append(base, opts...)...), nil
}

// State returns a snapshot of the current state tree.
func (d *Dispatcher) State() state.State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Enqueue submits an action for the Run loop. Safe from any goroutine.
// Returns false once the dispatcher has been stopped.
func (d *Dispatcher) Enqueue(a action.Action) bool {
	return d.queue.Enqueue(a)
}

// QueueLen returns the number of pending actions. Useful for monitoring
// and tests.
func (d *Dispatcher) QueueLen() int {
	return d.queue.Len()
}

// Run starts the single-writer loop and blocks until the context is
// cancelled or Stop() is called.
//
// On a journal write failure the action is logged with full context and
// dropped; processing continues. Retrying inside the loop would reorder
// the journal relative to later actions, which replay could not reproduce.
func (d *Dispatcher) Run(ctx context.Context) error {
	slog.Info("dispatcher starting")

	for {
		a, ok := d.queue.TryDequeue()
		if ok {
			if _, err := d.Dispatch(ctx, a); err != nil {
				slog.Error("action dispatch failed",
					"error", err,
					"action", a.Name(),
				)
			}
			continue
		}

		select {
		case <-ctx.Done():
			slog.Info("dispatcher stopping: context cancelled")
			d.queue.Close()
			return ctx.Err()

		case <-d.queue.Wait():
			// Signal fires spuriously once the queue is closed; an empty
			// closed queue means a clean stop.
			if d.queue.Len() == 0 {
				slog.Info("dispatcher stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop closes the queue, which makes Run return after draining.
func (d *Dispatcher) Stop() {
	d.queue.Close()
}

// Dispatch stamps, gates, reduces, and journals one action synchronously,
// returning the resulting state snapshot.
//
// Gated actions (per-user mutations while signed out) return the prior
// state unchanged and are not journaled: replaying a rejected action would
// be a harmless no-op, but the journal should read as what happened, not
// what was attempted.
func (d *Dispatcher) Dispatch(ctx context.Context, a action.Action) (state.State, error) {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	a = d.stamp(a)

	prior := d.State()
	if action.RequiresAuth(a) && !prior.Session.Authenticated {
		slog.Warn("action rejected: not authenticated", "action", a.Name())
		return prior, nil
	}

	next := state.Reduce(prior, a)

	if d.journal != nil {
		payload, err := action.Marshal(a)
		if err != nil {
			return prior, fmt.Errorf("dispatch %s: %w", a.Name(), err)
		}
		rec := store.Record{
			Seq:       d.clock.Next(),
			UserKey:   journalKey(prior, a),
			Name:      a.Name(),
			Payload:   payload,
			AppliedAt: d.now(),
		}
		if err := d.journal.Append(ctx, rec); err != nil {
			return prior, fmt.Errorf("dispatch %s: %w", a.Name(), err)
		}
	}

	d.mu.Lock()
	d.current = next
	d.mu.Unlock()

	slog.Debug("action applied",
		"action", a.Name(),
		"seq", d.clock.Current(),
		"cart_total", next.Cart.Total,
		"cart_items", next.Cart.ItemCount,
	)

	for _, sub := range d.subs {
		sub(next, a)
	}
	return next, nil
}

// stamp fills in IDs and timestamps for entities born at dispatch time.
// Pre-populated fields are respected so scenario files and replays can
// carry explicit values.
func (d *Dispatcher) stamp(a action.Action) action.Action {
	switch act := a.(type) {
	case action.PlaceOrder:
		if act.OrderID == "" {
			act.OrderID = d.ids.Generate()
		}
		if act.NotificationID == "" {
			act.NotificationID = d.ids.Generate()
		}
		if act.PlacedAt.IsZero() {
			act.PlacedAt = d.now().UTC()
		}
		return act

	case action.UpdateOrderStatus:
		if act.At.IsZero() {
			act.At = d.now().UTC()
		}
		return act

	case action.PushNotification:
		if act.Notification.ID == "" {
			act.Notification.ID = d.ids.Generate()
		}
		if act.Notification.CreatedAt.IsZero() {
			act.Notification.CreatedAt = d.now().UTC()
		}
		return act

	case action.AddAddress:
		if act.Address.ID == "" {
			act.Address.ID = d.ids.Generate()
		}
		return act

	case action.AddPaymentMethod:
		if act.Method.ID == "" {
			act.Method.ID = d.ids.Generate()
		}
		return act
	}
	return a
}

// journalKey attributes a record to the owning user, or to the reserved
// session key for actions that exist outside any session.
func journalKey(prior state.State, a action.Action) string {
	if action.RequiresAuth(a) {
		return prior.Session.UserID
	}
	return store.SessionKey
}

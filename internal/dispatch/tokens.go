package dispatch

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator mints identifiers for entities created at dispatch time
// (orders, notifications, addresses, payment methods). Implemented by
// UUIDv7Generator in production and FixedGenerator in tests.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 identifiers.
//
// The embedded timestamp makes IDs sortable by creation time, which keeps
// order journals and trace output readable without extra bookkeeping.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
// Panics if UUID generation fails, which does not happen in practice.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined tokens in order, for deterministic
// tests and golden trace comparison.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that yields the given tokens in
// order and panics when exhausted - a test asking for more IDs than it
// provisioned is a test bug, and failing fast beats silently reusing one.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic(fmt.Sprintf("dispatch: fixed generator exhausted after %d tokens", len(g.tokens)))
	}
	t := g.tokens[g.idx]
	g.idx++
	return t
}

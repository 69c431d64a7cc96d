package testutil

import (
	"fmt"
	"sync"
)

// SeqGenerator hands out readable sequential tokens such as "order-1",
// "order-2". It implements dispatch.TokenGenerator without the randomness
// of UUIDv7, which keeps generated order and notification IDs stable
// across runs and legible in golden traces.
//
// Thread-safety: Generate is safe for concurrent use.
type SeqGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int64
}

// NewSeqGenerator creates a generator with the given token prefix.
// An empty prefix defaults to "id".
func NewSeqGenerator(prefix string) *SeqGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &SeqGenerator{prefix: prefix}
}

// Generate returns the next token in the sequence, starting at "<prefix>-1".
// Implements dispatch.TokenGenerator.
func (g *SeqGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// Reset rewinds the sequence so the next token is "<prefix>-1" again.
func (g *SeqGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}

package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrozenClock_DoesNotTick(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := NewFrozenClock(at)

	assert.Equal(t, at, clock.Now())
	assert.Equal(t, at, clock.Now(), "repeated reads return the same instant")
}

func TestFrozenClock_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2025, 6, 1, 11, 0, 0, 0, loc)

	clock := NewFrozenClock(at)
	assert.Equal(t, time.UTC, clock.Now().Location())
	assert.True(t, at.Equal(clock.Now()))
}

func TestFrozenClock_Advance(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := NewFrozenClock(at)

	got := clock.Advance(90 * time.Second)
	want := at.Add(90 * time.Second)
	assert.Equal(t, want, got)
	assert.Equal(t, want, clock.Now())
}

func TestSeqGenerator_SequentialTokens(t *testing.T) {
	gen := NewSeqGenerator("order")

	assert.Equal(t, "order-1", gen.Generate())
	assert.Equal(t, "order-2", gen.Generate())
	assert.Equal(t, "order-3", gen.Generate())
}

func TestSeqGenerator_DefaultPrefix(t *testing.T) {
	gen := NewSeqGenerator("")
	assert.Equal(t, "id-1", gen.Generate())
}

func TestSeqGenerator_Reset(t *testing.T) {
	gen := NewSeqGenerator("notif")
	gen.Generate()
	gen.Generate()

	gen.Reset()
	assert.Equal(t, "notif-1", gen.Generate())
}

func TestSeqGenerator_ConcurrentTokensAreUnique(t *testing.T) {
	gen := NewSeqGenerator("tok")
	const workers = 50
	const perWorker = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				tok := gen.Generate()
				mu.Lock()
				assert.False(t, seen[tok], "duplicate token %s", tok)
				seen[tok] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

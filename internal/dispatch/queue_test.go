package dispatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessaro/storefront/internal/action"
)

func TestActionQueue_FIFO(t *testing.T) {
	q := newActionQueue()
	require.True(t, q.Enqueue(action.RemoveItem{ProductID: "p1"}))
	require.True(t, q.Enqueue(action.RemoveItem{ProductID: "p2"}))
	require.True(t, q.Enqueue(action.RemoveItem{ProductID: "p3"}))
	assert.Equal(t, 3, q.Len())

	for _, want := range []string{"p1", "p2", "p3"} {
		a, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, want, a.(action.RemoveItem).ProductID)
	}

	_, ok := q.TryDequeue()
	assert.False(t, ok, "drained queue yields nothing")
	assert.Zero(t, q.Len())
}

func TestActionQueue_EnqueueAfterCloseFails(t *testing.T) {
	q := newActionQueue()
	q.Close()
	assert.False(t, q.Enqueue(action.ClearCart{}))
}

func TestActionQueue_CloseIsIdempotent(t *testing.T) {
	q := newActionQueue()
	q.Close()
	assert.NotPanics(t, q.Close)
}

func TestActionQueue_WaitSignalsAvailability(t *testing.T) {
	q := newActionQueue()

	done := make(chan struct{})
	go func() {
		<-q.Wait()
		close(done)
	}()

	q.Enqueue(action.ClearCart{})
	<-done

	a, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, "cart.clear", a.Name())
}

func TestActionQueue_ConcurrentProducers(t *testing.T) {
	q := newActionQueue()
	const producers = 20
	const perProducer = 50

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Enqueue(action.ClearCart{})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, producers*perProducer, q.Len())
}

func TestFixedGenerator_YieldsInOrderThenPanics(t *testing.T) {
	g := NewFixedGenerator("t1", "t2")
	assert.Equal(t, "t1", g.Generate())
	assert.Equal(t, "t2", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestUUIDv7Generator_UniqueTokens(t *testing.T) {
	g := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := g.Generate()
		assert.Len(t, tok, 36)
		assert.False(t, seen[tok], "token %s issued twice", tok)
		seen[tok] = true
	}
}

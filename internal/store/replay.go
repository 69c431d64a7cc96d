package store

import (
	"context"
	"fmt"

	"github.com/tessaro/storefront/internal/action"
	"github.com/tessaro/storefront/internal/state"
)

// Replay folds the entire journal through the reducer, rebuilding the state
// tree the dispatcher held when the last record was appended.
//
// Replay is strict: a record that no longer decodes (unknown action tag,
// corrupt payload) aborts with its sequence number rather than skipping it -
// a silently partial replay would present a state that never existed.
func (s *Store) Replay(ctx context.Context) (state.State, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return state.State{}, fmt.Errorf("replay: %w", err)
	}

	st := state.New()
	for _, rec := range records {
		a, err := action.Unmarshal(rec.Payload)
		if err != nil {
			return state.State{}, fmt.Errorf("replay seq %d: %w", rec.Seq, err)
		}
		st = state.Reduce(st, a)
	}
	return st, nil
}

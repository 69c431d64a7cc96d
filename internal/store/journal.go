package store

import (
	"context"
	"fmt"
	"time"
)

// SessionKey is the reserved user key for actions that exist outside any
// authenticated session: catalog loads, sign-in/out, filter changes.
// Journaling them alongside per-user actions lets replay rebuild the full
// state tree, including the parts that survive sign-out.
const SessionKey = "_session"

// Record is one journaled action.
type Record struct {
	Seq       int64     // logical clock position, total order
	UserKey   string    // owning user ID, or SessionKey
	Name      string    // action type tag, e.g. "cart.add_item"
	Payload   []byte    // type-tagged action envelope (action.Marshal output)
	AppliedAt time.Time // wall-clock time of dispatch, informational only
}

// Append writes a record to the journal.
// Idempotent via ON CONFLICT(seq) DO NOTHING: re-appending an already
// journaled sequence number is silently ignored, so crash-retry loops
// cannot duplicate history.
func (s *Store) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO actions (seq, user_key, name, payload, applied_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`,
		rec.Seq,
		rec.UserKey,
		rec.Name,
		string(rec.Payload),
		rec.AppliedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append action %d (%s): %w", rec.Seq, rec.Name, err)
	}
	return nil
}

// ReadAll returns every journaled record ordered by sequence number.
// Returns an empty slice, not nil, for an empty journal.
func (s *Store) ReadAll(ctx context.Context) ([]Record, error) {
	return s.read(ctx, `
		SELECT seq, user_key, name, payload, applied_at
		FROM actions
		ORDER BY seq ASC
	`)
}

// ReadUser returns the journaled records for one user key, ordered by
// sequence number.
func (s *Store) ReadUser(ctx context.Context, userKey string) ([]Record, error) {
	return s.read(ctx, `
		SELECT seq, user_key, name, payload, applied_at
		FROM actions
		WHERE user_key = ?
		ORDER BY seq ASC
	`, userKey)
}

func (s *Store) read(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		var payload, appliedAt string
		if err := rows.Scan(&rec.Seq, &rec.UserKey, &rec.Name, &payload, &appliedAt); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		rec.Payload = []byte(payload)
		rec.AppliedAt, err = time.Parse(time.RFC3339Nano, appliedAt)
		if err != nil {
			return nil, fmt.Errorf("parse applied_at for seq %d: %w", rec.Seq, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return records, nil
}

package store

import (
	"context"
	"fmt"

	"keypad/internal/key"
)

// WriteStep inserts a step record into the trace log.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - replayed steps with
// identical content-addressed IDs are silently ignored. Other constraint
// violations (e.g., NOT NULL) still return errors.
func (s *Store) WriteStep(ctx context.Context, step key.Step) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO steps
		(id, session, kind, value, display, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		step.ID,
		step.Session,
		step.Kind,
		step.Value,
		step.Display,
		step.Seq,
	)
	if err != nil {
		return fmt.Errorf("write step: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"keypad/internal/key"
)

// ReadSession returns all steps for a session token.
// Results are ordered deterministically: ORDER BY seq ASC, id ASC
// COLLATE BINARY.
//
// Returns an empty slice (not nil) if no steps exist for the session.
func (s *Store) ReadSession(ctx context.Context, session string) ([]key.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session, kind, value, display, seq
		FROM steps
		WHERE session = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	var steps []key.Step
	for rows.Next() {
		var step key.Step
		if err := rows.Scan(&step.ID, &step.Session, &step.Kind, &step.Value, &step.Display, &step.Seq); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}

	if steps == nil {
		steps = []key.Step{}
	}

	return steps, nil
}

// ReadStep retrieves a single step by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadStep(ctx context.Context, id string) (key.Step, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session, kind, value, display, seq
		FROM steps
		WHERE id = ?
	`, id)

	var step key.Step
	if err := row.Scan(&step.ID, &step.Session, &step.Kind, &step.Value, &step.Display, &step.Seq); err != nil {
		if err == sql.ErrNoRows {
			return key.Step{}, err
		}
		return key.Step{}, fmt.Errorf("scan step: %w", err)
	}

	return step, nil
}

// ListSessions returns all distinct session tokens in first-seen order
// (minimum seq per session, token as tiebreaker).
func (s *Store) ListSessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session
		FROM steps
		GROUP BY session
		ORDER BY MIN(seq) ASC, session COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var session string
		if err := rows.Scan(&session); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	if sessions == nil {
		sessions = []string{}
	}

	return sessions, nil
}

// CountSteps returns the number of steps recorded for a session.
func (s *Store) CountSteps(ctx context.Context, session string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM steps WHERE session = ?
	`, session).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count steps: %w", err)
	}
	return count, nil
}

// LastSeq returns the highest seq recorded for a session, 0 when the
// session has no steps. Used by replay to resume the clock.
func (s *Store) LastSeq(ctx context.Context, session string) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(seq) FROM steps WHERE session = ?
	`, session).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}

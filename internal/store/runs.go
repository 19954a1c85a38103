package store

import (
	"context"
	"fmt"
	"time"

	"ecotrack/internal/model"
)

// CreateRun records a new pipeline run in pending state.
func (s *Store) CreateRun(ctx context.Context, runID string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, status, created_at, updated_at) VALUES (?, ?, ?, ?);`,
		runID, model.RunPending, now, now)
	if err != nil {
		return fmt.Errorf("%w: create run: %v", ErrWrite, err)
	}
	return nil
}

// UpdateRunStatus advances a run's status.
func (s *Store) UpdateRunStatus(ctx context.Context, runID, status string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?;`,
		status, time.Now().UTC(), runID)
	if err != nil {
		return fmt.Errorf("%w: update run status: %v", ErrWrite, err)
	}
	return nil
}

// SaveRunError records a per-stage failure for a run.
func (s *Store) SaveRunError(ctx context.Context, runID, stage string, runErr error) error {
	if runErr == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_errors (run_id, stage, message, created_at) VALUES (?, ?, ?, ?);`,
		runID, stage, runErr.Error(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: save run error: %v", ErrWrite, err)
	}
	return nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]model.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC LIMIT ?;`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("%w: query runs: %v", ErrWrite, err)
	}
	defer rows.Close()

	runs := []model.Run{}
	for rows.Next() {
		var r model.Run
		if err := rows.Scan(&r.ID, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan run: %v", ErrWrite, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate runs: %v", ErrWrite, err)
	}
	return runs, nil
}

// RunErrors returns the recorded failures for one run, oldest first.
func (s *Store) RunErrors(ctx context.Context, runID string) ([]model.RunError, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, stage, message, created_at FROM run_errors WHERE run_id = ? ORDER BY id;`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("%w: query run errors: %v", ErrWrite, err)
	}
	defer rows.Close()

	errs := []model.RunError{}
	for rows.Next() {
		var e model.RunError
		if err := rows.Scan(&e.RunID, &e.Stage, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan run error: %v", ErrWrite, err)
		}
		errs = append(errs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate run errors: %v", ErrWrite, err)
	}
	return errs, nil
}

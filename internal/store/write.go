package store

import (
	"context"
	"fmt"
)

// WriteRun starts a new run for source and returns it with its ID and
// started_seq assigned.
func (s *Store) WriteRun(ctx context.Context, source string) (Run, error) {
	run := Run{ID: s.runID.Generate(), Source: source}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO runs (id, started_seq, source)
		SELECT ?, COALESCE(MAX(started_seq), 0) + 1, ? FROM runs
		RETURNING started_seq
	`, run.ID, run.Source).Scan(&run.StartedSeq)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	return run, nil
}

// WriteCheck appends a check to its run. The run must exist.
func (s *Store) WriteCheck(ctx context.Context, c Check) error {
	classes, err := marshalSet(c.Classes)
	if err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	faces, err := marshalSet(c.Faces)
	if err != nil {
		return fmt.Errorf("write check: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO checks
		(run_id, seq, scenario, kind, text, range_beg, range_end, classes, faces, pass, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.RunID,
		c.Seq,
		c.Scenario,
		c.Kind,
		c.Text,
		c.Beg,
		c.End,
		classes,
		faces,
		c.Pass,
		c.Message,
	)
	if err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

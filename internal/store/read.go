package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoRuns is returned by LatestRun when the log is empty.
var ErrNoRuns = errors.New("no runs recorded")

// LatestRun returns the run with the highest started_seq.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_seq, source FROM runs
		ORDER BY started_seq DESC
		LIMIT 1
	`).Scan(&run.ID, &run.StartedSeq, &run.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("query latest run: %w", err)
	}
	return run, nil
}

// ErrRunNotFound is returned by ReadRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns the run with the given id.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_seq, source FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.StartedSeq, &run.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	return run, nil
}

// ReadChecks returns the checks of a run in the order they were written.
// Returns an empty slice (not nil) if the run has none.
func (s *Store) ReadChecks(ctx context.Context, runID string) ([]Check, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, scenario, kind, text, range_beg, range_end, classes, faces, pass, message
		FROM checks
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer rows.Close()

	checks := []Check{}
	for rows.Next() {
		var (
			c              Check
			classes, faces string
		)
		if err := rows.Scan(&c.RunID, &c.Seq, &c.Scenario, &c.Kind, &c.Text,
			&c.Beg, &c.End, &classes, &faces, &c.Pass, &c.Message); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		if c.Classes, err = unmarshalSet(classes); err != nil {
			return nil, err
		}
		if c.Faces, err = unmarshalSet(faces); err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checks: %w", err)
	}
	return checks, nil
}

// Summarize counts passing and failing checks per scenario of a run, in
// scenario name order.
func (s *Store) Summarize(ctx context.Context, runID string) ([]ScenarioSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scenario,
		       SUM(CASE WHEN pass THEN 1 ELSE 0 END),
		       SUM(CASE WHEN pass THEN 0 ELSE 1 END)
		FROM checks
		WHERE run_id = ?
		GROUP BY scenario
		ORDER BY scenario COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	out := []ScenarioSummary{}
	for rows.Next() {
		var sum ScenarioSummary
		if err := rows.Scan(&sum.Scenario, &sum.Passed, &sum.Failed); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}
	return out, nil
}

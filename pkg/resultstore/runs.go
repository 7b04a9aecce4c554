package resultstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lazear/mcode/pkg/report"
)

// RunSummary is one row of mcode_runs.
type RunSummary struct {
	RunID     string
	CreatedAt time.Time
	Vertices  int
	Edges     int
	Complexes int
}

// SaveRun inserts a run with all its complexes and members in one
// batch round trip.
func (s *Store) SaveRun(ctx context.Context, rep *report.Report) error {
	insertRun := `
		INSERT INTO mcode_runs (run_id, vertices, edges, max_coreness, seeds_expanded, candidates_emitted, complexes, elapsed_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	insertComplex := `
		INSERT INTO mcode_complexes (run_id, complex_id, seed, score, density, size)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	insertMember := `
		INSERT INTO mcode_members (run_id, complex_id, member)
		VALUES ($1, $2, $3)
	`

	batch := &pgx.Batch{}
	batch.Queue(insertRun,
		rep.RunID,
		rep.Stats.Vertices,
		rep.Stats.Edges,
		rep.Stats.MaxCoreness,
		rep.Stats.SeedsExpanded,
		rep.Stats.CandidatesEmitted,
		len(rep.Complexes),
		rep.Stats.ElapsedSeconds,
	)
	for _, c := range rep.Complexes {
		batch.Queue(insertComplex, rep.RunID, c.ID, c.Seed, c.Score, c.Density, c.Size)
		for _, m := range c.Members {
			batch.Queue(insertMember, rep.RunID, c.ID, m)
		}
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save run %s: %w", rep.RunID, err)
		}
	}
	return nil
}

// GetRun retrieves one run's summary row.
func (s *Store) GetRun(ctx context.Context, runID string) (*RunSummary, error) {
	query := `
		SELECT run_id, created_at, vertices, edges, complexes
		FROM mcode_runs
		WHERE run_id = $1
	`

	run := &RunSummary{}
	err := s.pool.QueryRow(ctx, query, runID).Scan(
		&run.RunID,
		&run.CreatedAt,
		&run.Vertices,
		&run.Edges,
		&run.Complexes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
		SELECT run_id, created_at, vertices, edges, complexes
		FROM mcode_runs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(&run.RunID, &run.CreatedAt, &run.Vertices, &run.Edges, &run.Complexes); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

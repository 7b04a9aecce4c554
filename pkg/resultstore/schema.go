package resultstore

import "context"

// migrate creates the result tables if they do not exist.
func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS mcode_runs (
		run_id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		vertices BIGINT NOT NULL,
		edges BIGINT NOT NULL,
		max_coreness INT NOT NULL,
		seeds_expanded BIGINT NOT NULL,
		candidates_emitted BIGINT NOT NULL,
		complexes INT NOT NULL,
		elapsed_seconds DOUBLE PRECISION NOT NULL
	);

	CREATE TABLE IF NOT EXISTS mcode_complexes (
		run_id TEXT NOT NULL REFERENCES mcode_runs(run_id) ON DELETE CASCADE,
		complex_id INT NOT NULL,
		seed TEXT NOT NULL,
		score DOUBLE PRECISION NOT NULL,
		density DOUBLE PRECISION NOT NULL,
		size INT NOT NULL,
		PRIMARY KEY (run_id, complex_id)
	);

	CREATE TABLE IF NOT EXISTS mcode_members (
		run_id TEXT NOT NULL,
		complex_id INT NOT NULL,
		member TEXT NOT NULL,
		PRIMARY KEY (run_id, complex_id, member),
		FOREIGN KEY (run_id, complex_id)
			REFERENCES mcode_complexes(run_id, complex_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_mcode_complexes_score ON mcode_complexes(run_id, score DESC);
	CREATE INDEX IF NOT EXISTS idx_mcode_members_member ON mcode_members(member);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

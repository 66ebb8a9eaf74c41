package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS stategraph_checkpoints (
    id          TEXT PRIMARY KEY,
    workflow_id TEXT NOT NULL,
    node_name   TEXT NOT NULL,
    state       JSONB NOT NULL DEFAULT '{}',
    created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stategraph_checkpoints_workflow
    ON stategraph_checkpoints(workflow_id, created_at DESC);
`

// CreateSchema creates the checkpoints table if it doesn't exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the checkpoints table.
func (s *Store) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS stategraph_checkpoints CASCADE;`)
	return err
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/stategraph"
	"github.com/jackc/pgx/v5"
)

// Save persists a checkpoint. Saving an existing ID overwrites the record
// (last-write-wins).
func (s *Store) Save(ctx context.Context, checkpoint *stategraph.Checkpoint) error {
	stateJSON, err := json.Marshal(checkpoint.State)
	if err != nil {
		return fmt.Errorf("checkpoint: marshal state: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO stategraph_checkpoints (id, workflow_id, node_name, state, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET workflow_id = EXCLUDED.workflow_id,
		     node_name   = EXCLUDED.node_name,
		     state       = EXCLUDED.state,
		     created_at  = EXCLUDED.created_at`,
		checkpoint.ID, checkpoint.WorkflowID, checkpoint.NodeName, stateJSON, checkpoint.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("checkpoint: save: %w", err)
	}
	return nil
}

// Load fetches a checkpoint by its ID. Returns nil, nil if not found.
func (s *Store) Load(ctx context.Context, id string) (*stategraph.Checkpoint, error) {
	var checkpoint stategraph.Checkpoint
	var stateJSON []byte
	err := s.db.QueryRow(ctx,
		`SELECT id, workflow_id, node_name, state, created_at
		 FROM stategraph_checkpoints WHERE id = $1`, id,
	).Scan(&checkpoint.ID, &checkpoint.WorkflowID, &checkpoint.NodeName, &stateJSON, &checkpoint.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checkpoint: load: %w", err)
	}
	if err := json.Unmarshal(stateJSON, &checkpoint.State); err != nil {
		return nil, fmt.Errorf("checkpoint: unmarshal state: %w", err)
	}
	return &checkpoint, nil
}

// List returns all checkpoints for a workflow, newest first.
func (s *Store) List(ctx context.Context, workflowID string) ([]*stategraph.Checkpoint, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, workflow_id, node_name, state, created_at
		 FROM stategraph_checkpoints
		 WHERE workflow_id = $1
		 ORDER BY created_at DESC, id DESC`, workflowID)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: list: %w", err)
	}
	defer rows.Close()

	checkpoints := []*stategraph.Checkpoint{}
	for rows.Next() {
		var checkpoint stategraph.Checkpoint
		var stateJSON []byte
		if err := rows.Scan(&checkpoint.ID, &checkpoint.WorkflowID, &checkpoint.NodeName, &stateJSON, &checkpoint.CreatedAt); err != nil {
			return nil, fmt.Errorf("checkpoint: scan: %w", err)
		}
		if err := json.Unmarshal(stateJSON, &checkpoint.State); err != nil {
			return nil, fmt.Errorf("checkpoint: unmarshal state: %w", err)
		}
		checkpoints = append(checkpoints, &checkpoint)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checkpoint: list: %w", err)
	}
	return checkpoints, nil
}

// Delete removes a checkpoint by ID. Deleting a missing checkpoint is not an
// error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx,
		`DELETE FROM stategraph_checkpoints WHERE id = $1`, id); err != nil {
		return fmt.Errorf("checkpoint: delete: %w", err)
	}
	return nil
}

// DeleteByWorkflow removes all checkpoints for a workflow.
func (s *Store) DeleteByWorkflow(ctx context.Context, workflowID string) error {
	if _, err := s.db.Exec(ctx,
		`DELETE FROM stategraph_checkpoints WHERE workflow_id = $1`, workflowID); err != nil {
		return fmt.Errorf("checkpoint: delete by workflow: %w", err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

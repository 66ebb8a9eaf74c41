package stategraph

import (
	"context"
)

// CheckpointStore is the persistence boundary for checkpoints. In-memory,
// file, and database-backed implementations are interchangeable. Stores must
// tolerate concurrent saves for different checkpoint IDs; concurrent saves
// for the same ID are last-write-wins.
type CheckpointStore interface {
	// Save persists a checkpoint, overwriting any existing record with the
	// same ID.
	Save(ctx context.Context, checkpoint *Checkpoint) error

	// Load returns a checkpoint by ID, or (nil, nil) if it does not exist.
	// A missing checkpoint is a normal result, not an error; errors are
	// reserved for storage failures.
	Load(ctx context.Context, id string) (*Checkpoint, error)

	// List returns all checkpoints for a workflow, newest first. Unknown
	// workflow IDs yield an empty slice.
	List(ctx context.Context, workflowID string) ([]*Checkpoint, error)

	// Delete removes a checkpoint by ID. Deleting a missing checkpoint is
	// not an error.
	Delete(ctx context.Context, id string) error

	// DeleteByWorkflow removes all checkpoints for a workflow, leaving other
	// workflows untouched.
	DeleteByWorkflow(ctx context.Context, workflowID string) error
}

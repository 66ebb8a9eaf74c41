package stategraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// CheckpointManagerOptions configures a CheckpointManager.
type CheckpointManagerOptions struct {
	Store  CheckpointStore
	Logger *slog.Logger
}

// CheckpointManager records where a workflow is ("at node X with state S")
// behind a pluggable store, and provides workflow-scoped retrieval. It has no
// dependency on the Executor; the two compose only through the caller.
type CheckpointManager struct {
	store  CheckpointStore
	logger *slog.Logger
}

// NewCheckpointManager creates a manager backed by the given store.
func NewCheckpointManager(opts CheckpointManagerOptions) (*CheckpointManager, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("checkpoint store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CheckpointManager{
		store:  opts.Store,
		logger: opts.Logger,
	}, nil
}

// CreateCheckpoint generates an ID, stamps the current time, persists the
// snapshot, and returns the full checkpoint record.
func (m *CheckpointManager) CreateCheckpoint(ctx context.Context, workflowID, nodeName string, state State) (*Checkpoint, error) {
	if workflowID == "" {
		return nil, fmt.Errorf("workflow id is required")
	}
	if nodeName == "" {
		return nil, fmt.Errorf("node name is required")
	}
	checkpoint := &Checkpoint{
		ID:         NewCheckpointID(),
		WorkflowID: workflowID,
		NodeName:   nodeName,
		State:      state.Copy(),
		CreatedAt:  time.Now(),
	}
	if err := m.store.Save(ctx, checkpoint); err != nil {
		return nil, fmt.Errorf("failed to save checkpoint: %w", err)
	}
	m.logger.Debug("checkpoint created",
		"checkpoint_id", checkpoint.ID,
		"workflow_id", workflowID,
		"node", nodeName)
	return checkpoint, nil
}

// LoadCheckpoint returns a checkpoint by ID, or (nil, nil) if it does not
// exist.
func (m *CheckpointManager) LoadCheckpoint(ctx context.Context, id string) (*Checkpoint, error) {
	return m.store.Load(ctx, id)
}

// ListCheckpoints returns all checkpoints for a workflow, newest first.
func (m *CheckpointManager) ListCheckpoints(ctx context.Context, workflowID string) ([]*Checkpoint, error) {
	return m.store.List(ctx, workflowID)
}

// LatestCheckpoint returns the most recent checkpoint for a workflow, or
// (nil, nil) if the workflow has none.
func (m *CheckpointManager) LatestCheckpoint(ctx context.Context, workflowID string) (*Checkpoint, error) {
	checkpoints, err := m.store.List(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if len(checkpoints) == 0 {
		return nil, nil
	}
	return checkpoints[0], nil
}

// DeleteCheckpoint removes a checkpoint by ID.
func (m *CheckpointManager) DeleteCheckpoint(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

// Cleanup removes all checkpoints for a workflow, never touching other
// workflows' checkpoints.
func (m *CheckpointManager) Cleanup(ctx context.Context, workflowID string) error {
	if err := m.store.DeleteByWorkflow(ctx, workflowID); err != nil {
		return fmt.Errorf("failed to clean up checkpoints: %w", err)
	}
	m.logger.Debug("checkpoints cleaned up", "workflow_id", workflowID)
	return nil
}

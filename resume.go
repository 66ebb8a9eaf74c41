package stategraph

import (
	"context"
	"fmt"
)

// CheckpointingCallbacks saves a checkpoint before every node invocation, so
// the latest checkpoint always names the node the run is at and the state
// going into it. Register it on an Executor to make runs resumable.
type CheckpointingCallbacks struct {
	BaseExecutionCallbacks
	manager *CheckpointManager
}

// NewCheckpointingCallbacks creates callbacks that checkpoint through the
// given manager. Events without a workflow ID are not checkpointed.
func NewCheckpointingCallbacks(manager *CheckpointManager) *CheckpointingCallbacks {
	return &CheckpointingCallbacks{manager: manager}
}

func (c *CheckpointingCallbacks) BeforeNode(ctx context.Context, event *NodeExecutionEvent) {
	if event.WorkflowID == "" {
		return
	}
	if _, err := c.manager.CreateCheckpoint(ctx, event.WorkflowID, event.Node, event.State); err != nil {
		if logger, ok := GetLoggerFromContext(ctx); ok {
			logger.Error("failed to save checkpoint", "node", event.Node, "error", err)
		}
	}
}

// ResumeOptions configures a resumed run.
type ResumeOptions struct {
	// Graph to execute. Required.
	Graph *Graph

	// Manager used to look up the workflow's latest checkpoint. Required.
	Manager *CheckpointManager

	// WorkflowID identifies the workflow to resume. Required.
	WorkflowID string

	// InitialState seeds the run when the workflow has no checkpoint yet.
	InitialState State

	// MaxSteps bounds handler invocations. Defaults to DefaultMaxSteps.
	MaxSteps int
}

// Resume re-enters a graph at the workflow's latest checkpointed node with
// the checkpointed state. When no checkpoint exists the run starts fresh from
// the graph's entry point with opts.InitialState.
func (e *Executor) Resume(ctx context.Context, opts ResumeOptions) (*Result, error) {
	if opts.Graph == nil {
		return nil, fmt.Errorf("graph is required")
	}
	if opts.Manager == nil {
		return nil, fmt.Errorf("checkpoint manager is required")
	}
	if opts.WorkflowID == "" {
		return nil, fmt.Errorf("workflow id is required")
	}

	execOpts := ExecuteOptions{
		Graph:        opts.Graph,
		InitialState: opts.InitialState,
		MaxSteps:     opts.MaxSteps,
		WorkflowID:   opts.WorkflowID,
	}
	checkpoint, err := opts.Manager.LatestCheckpoint(ctx, opts.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest checkpoint: %w", err)
	}
	if checkpoint != nil {
		execOpts.StartNode = checkpoint.NodeName
		execOpts.InitialState = checkpoint.State
		e.logger.Info("resuming from checkpoint",
			"workflow_id", opts.WorkflowID,
			"checkpoint_id", checkpoint.ID,
			"node", checkpoint.NodeName)
	}
	return e.Execute(ctx, execOpts)
}

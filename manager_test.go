package stategraph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *CheckpointManager {
	t.Helper()
	manager, err := NewCheckpointManager(CheckpointManagerOptions{
		Store: NewMemoryCheckpointStore(),
	})
	require.NoError(t, err)
	return manager
}

func TestNewCheckpointManager(t *testing.T) {
	t.Run("store is required", func(t *testing.T) {
		_, err := NewCheckpointManager(CheckpointManagerOptions{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "store is required")
	})
}

func TestCheckpointRoundTrip(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	state := State{"count": 3, "label": "checkpoint-test"}
	created, err := manager.CreateCheckpoint(ctx, "wf-1", "process", state)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	loaded, err := manager.LoadCheckpoint(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, created.ID, loaded.ID)
	require.Equal(t, "wf-1", loaded.WorkflowID)
	require.Equal(t, "process", loaded.NodeName)
	require.Equal(t, state, loaded.State)
}

func TestCheckpointValidation(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	t.Run("workflow id required", func(t *testing.T) {
		_, err := manager.CreateCheckpoint(ctx, "", "node", State{})
		require.Error(t, err)
	})

	t.Run("node name required", func(t *testing.T) {
		_, err := manager.CreateCheckpoint(ctx, "wf-1", "", State{})
		require.Error(t, err)
	})
}

func TestLoadMissingCheckpoint(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	// Missing checkpoints are a normal result, not an error
	loaded, err := manager.LoadCheckpoint(ctx, "ckpt_does_not_exist")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestListCheckpointsNewestFirst(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	var ids []string
	for i, node := range []string{"first", "second", "third"} {
		checkpoint, err := manager.CreateCheckpoint(ctx, "wf-1", node, State{"step": i})
		require.NoError(t, err)
		ids = append(ids, checkpoint.ID)
		time.Sleep(5 * time.Millisecond)
	}

	checkpoints, err := manager.ListCheckpoints(ctx, "wf-1")
	require.NoError(t, err)
	require.Len(t, checkpoints, 3)
	require.Equal(t, ids[2], checkpoints[0].ID)
	require.Equal(t, ids[1], checkpoints[1].ID)
	require.Equal(t, ids[0], checkpoints[2].ID)

	t.Run("unknown workflow lists empty", func(t *testing.T) {
		checkpoints, err := manager.ListCheckpoints(ctx, "wf-unknown")
		require.NoError(t, err)
		require.Empty(t, checkpoints)
	})
}

func TestLatestCheckpoint(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	t.Run("no checkpoints yields nil", func(t *testing.T) {
		latest, err := manager.LatestCheckpoint(ctx, "wf-1")
		require.NoError(t, err)
		require.Nil(t, latest)
	})

	t.Run("returns the most recent", func(t *testing.T) {
		_, err := manager.CreateCheckpoint(ctx, "wf-1", "first", State{})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		second, err := manager.CreateCheckpoint(ctx, "wf-1", "second", State{})
		require.NoError(t, err)

		latest, err := manager.LatestCheckpoint(ctx, "wf-1")
		require.NoError(t, err)
		require.NotNil(t, latest)
		require.Equal(t, second.ID, latest.ID)
		require.Equal(t, "second", latest.NodeName)
	})
}

func TestDeleteCheckpoint(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	checkpoint, err := manager.CreateCheckpoint(ctx, "wf-1", "node", State{})
	require.NoError(t, err)

	require.NoError(t, manager.DeleteCheckpoint(ctx, checkpoint.ID))

	loaded, err := manager.LoadCheckpoint(ctx, checkpoint.ID)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestCleanupScopedToWorkflow(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	for i := 0; i < 3; i++ {
		_, err := manager.CreateCheckpoint(ctx, "wf-1", "node", State{"i": i})
		require.NoError(t, err)
	}
	kept, err := manager.CreateCheckpoint(ctx, "wf-2", "node", State{})
	require.NoError(t, err)

	require.NoError(t, manager.Cleanup(ctx, "wf-1"))

	removed, err := manager.ListCheckpoints(ctx, "wf-1")
	require.NoError(t, err)
	require.Empty(t, removed)

	remaining, err := manager.ListCheckpoints(ctx, "wf-2")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, kept.ID, remaining[0].ID)
}

func TestCheckpointIsolation(t *testing.T) {
	// Mutating a loaded checkpoint's state must not affect the stored copy.
	ctx := context.Background()
	manager := newTestManager(t)

	created, err := manager.CreateCheckpoint(ctx, "wf-1", "node", State{"value": 1})
	require.NoError(t, err)

	loaded, err := manager.LoadCheckpoint(ctx, created.ID)
	require.NoError(t, err)
	loaded.State["value"] = 999

	reloaded, err := manager.LoadCheckpoint(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.State["value"])
}

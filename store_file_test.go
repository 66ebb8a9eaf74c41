package stategraph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileCheckpointStore {
	t.Helper()
	store, err := NewFileCheckpointStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	checkpoint := &Checkpoint{
		ID:         NewCheckpointID(),
		WorkflowID: "wf-1",
		NodeName:   "process",
		State:      State{"count": float64(3), "label": "file-test"},
		CreatedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, store.Save(ctx, checkpoint))

	loaded, err := store.Load(ctx, checkpoint.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, checkpoint.ID, loaded.ID)
	require.Equal(t, checkpoint.WorkflowID, loaded.WorkflowID)
	require.Equal(t, checkpoint.NodeName, loaded.NodeName)
	require.Equal(t, checkpoint.State, loaded.State)
	require.True(t, checkpoint.CreatedAt.Equal(loaded.CreatedAt))
}

func TestFileStoreLoadMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	loaded, err := store.Load(ctx, "ckpt_missing")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestFileStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	base := time.Now().UTC()
	var ids []string
	for i := 0; i < 3; i++ {
		checkpoint := &Checkpoint{
			ID:         NewCheckpointID(),
			WorkflowID: "wf-1",
			NodeName:   "node",
			State:      State{},
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.Save(ctx, checkpoint))
		ids = append(ids, checkpoint.ID)
	}

	checkpoints, err := store.List(ctx, "wf-1")
	require.NoError(t, err)
	require.Len(t, checkpoints, 3)
	require.Equal(t, ids[2], checkpoints[0].ID)
	require.Equal(t, ids[1], checkpoints[1].ID)
	require.Equal(t, ids[0], checkpoints[2].ID)
}

func TestFileStoreListUnknownWorkflow(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	checkpoints, err := store.List(ctx, "wf-unknown")
	require.NoError(t, err)
	require.Empty(t, checkpoints)
}

func TestFileStoreDeleteByWorkflow(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	for _, workflowID := range []string{"wf-1", "wf-1", "wf-2"} {
		require.NoError(t, store.Save(ctx, &Checkpoint{
			ID:         NewCheckpointID(),
			WorkflowID: workflowID,
			NodeName:   "node",
			State:      State{},
			CreatedAt:  time.Now(),
		}))
	}

	require.NoError(t, store.DeleteByWorkflow(ctx, "wf-1"))

	removed, err := store.List(ctx, "wf-1")
	require.NoError(t, err)
	require.Empty(t, removed)

	remaining, err := store.List(ctx, "wf-2")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	checkpoint := &Checkpoint{
		ID:         NewCheckpointID(),
		WorkflowID: "wf-1",
		NodeName:   "node",
		State:      State{},
		CreatedAt:  time.Now(),
	}
	require.NoError(t, store.Save(ctx, checkpoint))
	require.NoError(t, store.Delete(ctx, checkpoint.ID))

	loaded, err := store.Load(ctx, checkpoint.ID)
	require.NoError(t, err)
	require.Nil(t, loaded)

	// Deleting again is not an error
	require.NoError(t, store.Delete(ctx, checkpoint.ID))
}

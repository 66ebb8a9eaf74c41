package stategraph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileCheckpointStore is a file-based CheckpointStore that persists
// checkpoints to disk as JSON, one directory per workflow.
type FileCheckpointStore struct {
	dataDir string
}

// NewFileCheckpointStore creates a new file-based store rooted at dataDir.
// An empty dataDir defaults to a directory under the user's home.
func NewFileCheckpointStore(dataDir string) (*FileCheckpointStore, error) {
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".deepnoodle", "stategraph", "checkpoints")
	}

	// Ensure the data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	return &FileCheckpointStore{dataDir: dataDir}, nil
}

// Save writes the checkpoint to <dataDir>/<workflowID>/<checkpointID>.json
func (s *FileCheckpointStore) Save(ctx context.Context, checkpoint *Checkpoint) error {
	workflowDir := filepath.Join(s.dataDir, checkpoint.WorkflowID)
	if err := os.MkdirAll(workflowDir, 0755); err != nil {
		return fmt.Errorf("failed to create workflow directory: %w", err)
	}

	data, err := json.MarshalIndent(checkpoint, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	path := filepath.Join(workflowDir, checkpoint.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint file: %w", err)
	}
	return nil
}

// Load scans workflow directories for the checkpoint file with the given ID.
func (s *FileCheckpointStore) Load(ctx context.Context, id string) (*Checkpoint, error) {
	matches, err := filepath.Glob(filepath.Join(s.dataDir, "*", id+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to search for checkpoint: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil // No checkpoint found
	}
	return s.readCheckpoint(matches[0])
}

// List returns all checkpoints for a workflow, newest first.
func (s *FileCheckpointStore) List(ctx context.Context, workflowID string) ([]*Checkpoint, error) {
	workflowDir := filepath.Join(s.dataDir, workflowID)
	entries, err := os.ReadDir(workflowDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Checkpoint{}, nil // No checkpoints for this workflow yet
		}
		return nil, fmt.Errorf("failed to read workflow directory: %w", err)
	}

	checkpoints := make([]*Checkpoint, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		checkpoint, err := s.readCheckpoint(filepath.Join(workflowDir, entry.Name()))
		if err != nil {
			// Skip checkpoints we can't read
			continue
		}
		checkpoints = append(checkpoints, checkpoint)
	}

	sort.Slice(checkpoints, func(i, j int) bool {
		a, b := checkpoints[i], checkpoints[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return checkpoints, nil
}

func (s *FileCheckpointStore) Delete(ctx context.Context, id string) error {
	matches, err := filepath.Glob(filepath.Join(s.dataDir, "*", id+".json"))
	if err != nil {
		return fmt.Errorf("failed to search for checkpoint: %w", err)
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete checkpoint file: %w", err)
		}
	}
	return nil
}

func (s *FileCheckpointStore) DeleteByWorkflow(ctx context.Context, workflowID string) error {
	workflowDir := filepath.Join(s.dataDir, workflowID)
	if err := os.RemoveAll(workflowDir); err != nil {
		return fmt.Errorf("failed to delete workflow directory: %w", err)
	}
	return nil
}

func (s *FileCheckpointStore) readCheckpoint(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint file: %w", err)
	}
	var checkpoint Checkpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	return &checkpoint, nil
}

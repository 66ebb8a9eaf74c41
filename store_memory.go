package stategraph

import (
	"context"
	"sort"
	"sync"
)

// memoryRecord pairs a checkpoint with its insertion sequence, used to break
// ordering ties between checkpoints created within the same instant.
type memoryRecord struct {
	checkpoint *Checkpoint
	seq        int
}

// MemoryCheckpointStore is an in-memory CheckpointStore. Safe for concurrent
// use. Intended for tests and single-process callers that do not need
// durability.
type MemoryCheckpointStore struct {
	mutex   sync.RWMutex
	records map[string]*memoryRecord
	counter int
}

// NewMemoryCheckpointStore creates an empty in-memory store.
func NewMemoryCheckpointStore() *MemoryCheckpointStore {
	return &MemoryCheckpointStore{records: map[string]*memoryRecord{}}
}

func (s *MemoryCheckpointStore) Save(ctx context.Context, checkpoint *Checkpoint) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	seq := s.counter
	if existing, ok := s.records[checkpoint.ID]; ok {
		seq = existing.seq // overwrite keeps the original position
	} else {
		s.counter++
	}
	s.records[checkpoint.ID] = &memoryRecord{checkpoint: checkpoint.Copy(), seq: seq}
	return nil
}

func (s *MemoryCheckpointStore) Load(ctx context.Context, id string) (*Checkpoint, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return record.checkpoint.Copy(), nil
}

func (s *MemoryCheckpointStore) List(ctx context.Context, workflowID string) ([]*Checkpoint, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var matched []*memoryRecord
	for _, record := range s.records {
		if record.checkpoint.WorkflowID == workflowID {
			matched = append(matched, record)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.checkpoint.CreatedAt.Equal(b.checkpoint.CreatedAt) {
			return a.checkpoint.CreatedAt.After(b.checkpoint.CreatedAt)
		}
		return a.seq > b.seq
	})

	checkpoints := make([]*Checkpoint, 0, len(matched))
	for _, record := range matched {
		checkpoints = append(checkpoints, record.checkpoint.Copy())
	}
	return checkpoints, nil
}

func (s *MemoryCheckpointStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryCheckpointStore) DeleteByWorkflow(ctx context.Context, workflowID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for id, record := range s.records {
		if record.checkpoint.WorkflowID == workflowID {
			delete(s.records, id)
		}
	}
	return nil
}

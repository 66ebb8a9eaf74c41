package stategraph

import (
	"time"

	"go.jetify.com/typeid"
)

// NewCheckpointID returns a new prefixed ID for checkpoint identification
func NewCheckpointID() string {
	id, err := typeid.WithPrefix("ckpt")
	if err != nil {
		panic(err)
	}
	return id.String()
}

// Checkpoint is a persisted snapshot of where a workflow is: the node it
// stopped on and the state at that point. Feeding NodeName and State back
// into the executor as StartNode and InitialState resumes the run.
type Checkpoint struct {
	ID         string    `json:"id"`
	WorkflowID string    `json:"workflow_id"`
	NodeName   string    `json:"node_name"`
	State      State     `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
}

// Copy returns a copy of the checkpoint with its own state map.
func (c *Checkpoint) Copy() *Checkpoint {
	return &Checkpoint{
		ID:         c.ID,
		WorkflowID: c.WorkflowID,
		NodeName:   c.NodeName,
		State:      c.State.Copy(),
		CreatedAt:  c.CreatedAt,
	}
}

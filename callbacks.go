package stategraph

import (
	"context"
	"time"
)

// ExecutionCallbacks defines the callback interface for execution events
type ExecutionCallbacks interface {
	// Run-level callbacks
	BeforeExecution(ctx context.Context, event *ExecutionEvent)
	AfterExecution(ctx context.Context, event *ExecutionEvent)

	// Node-level callbacks
	BeforeNode(ctx context.Context, event *NodeExecutionEvent)
	AfterNode(ctx context.Context, event *NodeExecutionEvent)
}

// ExecutionEvent provides context for run-level execution events
type ExecutionEvent struct {
	WorkflowID    string
	StartNode     string
	Status        Status
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	State         State
	ExecutedNodes []string
	Error         error
}

// NodeExecutionEvent provides context for node-level execution events. State
// is the state going into the handler; Result is the state it returned.
type NodeExecutionEvent struct {
	WorkflowID string
	Node       string
	Step       int
	State      State
	Result     State
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Error      error
}

// BaseExecutionCallbacks provides a default implementation that does nothing.
// Embed this in your own callbacks to only implement the events you need.
type BaseExecutionCallbacks struct{}

func (n *BaseExecutionCallbacks) BeforeExecution(ctx context.Context, event *ExecutionEvent) {
	// noop
}

func (n *BaseExecutionCallbacks) AfterExecution(ctx context.Context, event *ExecutionEvent) {
	// noop
}

func (n *BaseExecutionCallbacks) BeforeNode(ctx context.Context, event *NodeExecutionEvent) {
	// noop
}

func (n *BaseExecutionCallbacks) AfterNode(ctx context.Context, event *NodeExecutionEvent) {
	// noop
}

// CallbackChain allows chaining multiple callback implementations
type CallbackChain struct {
	callbacks []ExecutionCallbacks
}

// NewCallbackChain creates a new callback chain
func NewCallbackChain(callbacks ...ExecutionCallbacks) *CallbackChain {
	return &CallbackChain{callbacks: callbacks}
}

// Add adds a callback to the chain
func (c *CallbackChain) Add(callback ExecutionCallbacks) {
	c.callbacks = append(c.callbacks, callback)
}

func (c *CallbackChain) BeforeExecution(ctx context.Context, event *ExecutionEvent) {
	for _, callback := range c.callbacks {
		callback.BeforeExecution(ctx, event)
	}
}

func (c *CallbackChain) AfterExecution(ctx context.Context, event *ExecutionEvent) {
	for _, callback := range c.callbacks {
		callback.AfterExecution(ctx, event)
	}
}

func (c *CallbackChain) BeforeNode(ctx context.Context, event *NodeExecutionEvent) {
	for _, callback := range c.callbacks {
		callback.BeforeNode(ctx, event)
	}
}

func (c *CallbackChain) AfterNode(ctx context.Context, event *NodeExecutionEvent) {
	for _, callback := range c.callbacks {
		callback.AfterNode(ctx, event)
	}
}

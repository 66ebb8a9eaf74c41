package stategraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Status represents the terminal outcome of a run. The "running" condition is
// internal to the execution loop and never observable from outside.
type Status string

const (
	StatusCompleted       Status = "completed"
	StatusFailed          Status = "failed"
	StatusMaxStepsReached Status = "max_steps_reached"
)

// DefaultMaxSteps bounds the number of handler invocations in a single run
// when ExecuteOptions.MaxSteps is not set. Build-time cycle detection cannot
// rule out dynamic cycles routed through conditional edges, so every run
// carries a hard step bound.
const DefaultMaxSteps = 100

// Result is the outcome of one run of a graph.
type Result struct {
	Status        Status          `json:"status"`
	FinalState    State           `json:"final_state"`
	ExecutedNodes []string        `json:"executed_nodes"`
	Steps         int             `json:"steps"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	Duration      time.Duration   `json:"duration"`
	Error         *ExecutionError `json:"-"`
}

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	Logger    *slog.Logger
	Callbacks ExecutionCallbacks
}

// Executor runs built graphs. It holds no per-run state, so a single Executor
// may run any number of graphs concurrently.
type Executor struct {
	logger    *slog.Logger
	callbacks ExecutionCallbacks
}

// NewExecutor creates an executor. All options are optional.
func NewExecutor(opts ExecutorOptions) *Executor {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Callbacks == nil {
		opts.Callbacks = &BaseExecutionCallbacks{}
	}
	return &Executor{
		logger:    opts.Logger,
		callbacks: opts.Callbacks,
	}
}

// ExecuteOptions configures a single run.
type ExecuteOptions struct {
	// Graph to execute. Required.
	Graph *Graph

	// InitialState seeds the run. May be nil.
	InitialState State

	// StartNode overrides the graph's entry point. Used to resume a run from
	// a checkpointed node.
	StartNode string

	// MaxSteps bounds handler invocations for this run. Defaults to
	// DefaultMaxSteps.
	MaxSteps int

	// WorkflowID identifies the run in callbacks and logs. Optional.
	WorkflowID string
}

// Execute runs the graph from its entry point (or opts.StartNode) until a
// terminal node, a handler failure, or the step bound. The graph is never
// mutated and each run carries its own state, so concurrent calls are safe.
// A handler failure is reported in the Result, not as a returned error; the
// error return covers invalid options only.
func (e *Executor) Execute(ctx context.Context, opts ExecuteOptions) (*Result, error) {
	if opts.Graph == nil {
		return nil, fmt.Errorf("graph is required")
	}
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	current := opts.StartNode
	if current == "" {
		current = opts.Graph.EntryPoint()
	}

	logger := e.logger
	if opts.WorkflowID != "" {
		logger = logger.With("workflow_id", opts.WorkflowID)
	}
	ctx = WithLogger(ctx, logger)

	state := opts.InitialState.Copy()
	startTime := time.Now()
	result := &Result{
		Status:        StatusCompleted,
		ExecutedNodes: []string{},
		StartTime:     startTime,
	}

	e.callbacks.BeforeExecution(ctx, &ExecutionEvent{
		WorkflowID: opts.WorkflowID,
		StartNode:  current,
		StartTime:  startTime,
		State:      state.Copy(),
	})

	logger.Debug("execution started", "start_node", current, "max_steps", maxSteps)

	for {
		if result.Steps >= maxSteps {
			result.Status = StatusMaxStepsReached
			logger.Warn("max steps reached", "steps", result.Steps)
			break
		}

		node, ok := opts.Graph.Node(current)
		if !ok {
			// Unreachable for graphs produced by Build, but the executor does
			// not assume a well-formed graph.
			result.Status = StatusFailed
			result.Error = &ExecutionError{
				Node:  current,
				State: state.Copy(),
				Err:   fmt.Errorf("node %q not found", current),
			}
			logger.Error("node not found", "node", current)
			break
		}

		next, err := e.executeNode(ctx, node, state, result.Steps, opts.WorkflowID)
		result.ExecutedNodes = append(result.ExecutedNodes, current)
		result.Steps++

		if err != nil {
			result.Status = StatusFailed
			result.Error = &ExecutionError{
				Node:  current,
				State: state.Copy(),
				Err:   err,
			}
			logger.Error("node failed", "node", current, "error", err)
			break
		}
		state = next

		target, ok := e.nextNode(ctx, opts.Graph, current, state)
		if !ok {
			logger.Debug("execution completed", "node", current, "steps", result.Steps)
			break
		}
		current = target
	}

	endTime := time.Now()
	result.EndTime = endTime
	result.Duration = endTime.Sub(startTime)
	result.FinalState = state

	e.callbacks.AfterExecution(ctx, &ExecutionEvent{
		WorkflowID:    opts.WorkflowID,
		StartNode:     opts.StartNode,
		Status:        result.Status,
		StartTime:     startTime,
		EndTime:       endTime,
		Duration:      result.Duration,
		State:         state.Copy(),
		ExecutedNodes: append([]string{}, result.ExecutedNodes...),
		Error:         errOrNil(result.Error),
	})
	return result, nil
}

// executeNode invokes one node handler with a copy of the current state, so
// the caller's snapshot stays intact if the handler fails or misbehaves.
func (e *Executor) executeNode(ctx context.Context, node *Node, state State, step int, workflowID string) (State, error) {
	startTime := time.Now()
	event := &NodeExecutionEvent{
		WorkflowID: workflowID,
		Node:       node.Name(),
		Step:       step,
		State:      state.Copy(),
		StartTime:  startTime,
	}
	e.callbacks.BeforeNode(ctx, event)

	next, err := node.Handler().Execute(ctx, state.Copy())

	endTime := time.Now()
	event.Result = next
	event.EndTime = endTime
	event.Duration = endTime.Sub(startTime)
	event.Error = err
	e.callbacks.AfterNode(ctx, event)

	if err != nil {
		return nil, err
	}
	return next.Copy(), nil
}

// nextNode resolves the node to run after current. Reports false when the run
// is complete: the node is terminal, or its conditional edge produced an
// outcome with no mapping.
func (e *Executor) nextNode(ctx context.Context, graph *Graph, current string, state State) (string, bool) {
	t, ok := graph.Transition(current)
	if !ok {
		return "", false
	}
	switch edge := t.(type) {
	case *Edge:
		return edge.Target(), true
	case *ConditionalEdge:
		outcome := edge.Decide(ctx, state)
		target, ok := edge.Target(outcome)
		if !ok {
			// A runtime outcome absent from the map is a normal terminal
			// result, not an error. Only declared outcomes are validated.
			e.logger.Debug("unmapped outcome, stopping", "node", current, "outcome", outcome)
			return "", false
		}
		return target, true
	default:
		return "", false
	}
}

func errOrNil(err *ExecutionError) error {
	if err == nil {
		return nil
	}
	return err
}

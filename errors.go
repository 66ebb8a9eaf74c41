package stategraph

import (
	"fmt"
	"strings"
)

// DuplicateNodeError indicates a node name was registered twice.
type DuplicateNodeError struct {
	Name string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("node %q already exists", e.Name)
}

// UnknownNodeError indicates an edge, conditional outcome, or entry point
// referenced a node that was never registered.
type UnknownNodeError struct {
	Name string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node %q", e.Name)
}

// DuplicateEdgeError indicates a node was given more than one outgoing
// transition. Each node routes through at most one transition, which may
// itself carry multiple conditional outcomes.
type DuplicateEdgeError struct {
	Source string
}

func (e *DuplicateEdgeError) Error() string {
	return fmt.Sprintf("node %q already has an outgoing transition", e.Source)
}

// MissingEntryPointError indicates Build was called before SetEntryPoint.
type MissingEntryPointError struct{}

func (e *MissingEntryPointError) Error() string {
	return "entry point not set"
}

// CycleDetectedError indicates the declared edges form a cycle reachable from
// the entry point. Path holds the node names along the cycle, ending with the
// node that closed it.
type CycleDetectedError struct {
	Path []string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("cycle detected: %s", strings.Join(e.Path, " -> "))
}

// ExecutionError carries the failure details of a run: the node whose handler
// failed, the state as of just before the failing invocation, and the
// underlying error.
type ExecutionError struct {
	Node  string
	State State
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("node %q failed: %s", e.Node, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

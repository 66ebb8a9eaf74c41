package stategraph

import (
	"context"
)

// Handler is the unit of work attached to a node. It receives the current
// state and returns the next one. Handlers must not mutate the state they are
// given; the executor relies on the input remaining intact when it records
// failure snapshots.
type Handler interface {

	// Execute the handler against the given state, returning the next state.
	Execute(ctx context.Context, state State) (State, error)
}

// HandlerFunc is a function that can be used as a node handler
type HandlerFunc func(ctx context.Context, state State) (State, error)

func (f HandlerFunc) Execute(ctx context.Context, state State) (State, error) {
	return f(ctx, state)
}

// Node is a named unit of work in a graph.
type Node struct {
	name    string
	handler Handler
}

// NewNode creates a node with the given name and handler.
func NewNode(name string, handler Handler) *Node {
	return &Node{name: name, handler: handler}
}

// Name returns the node name
func (n *Node) Name() string {
	return n.name
}

// Handler returns the node handler
func (n *Node) Handler() Handler {
	return n.handler
}

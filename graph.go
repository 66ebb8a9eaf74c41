package stategraph

import (
	"sort"
)

// Graph is the validated, immutable wiring of nodes and transitions produced
// by a GraphBuilder. A graph may be executed any number of times; runs share
// no mutable state.
type Graph struct {
	nodes       map[string]*Node
	transitions map[string]Transition
	entryPoint  string
}

// EntryPoint returns the name of the node execution begins at by default.
func (g *Graph) EntryPoint() string {
	return g.entryPoint
}

// Node returns a node by name.
func (g *Graph) Node(name string) (*Node, bool) {
	node, ok := g.nodes[name]
	return node, ok
}

// Transition returns the outgoing transition for a node, if it has one.
// Nodes without a transition are terminal.
func (g *Graph) Transition(source string) (Transition, bool) {
	t, ok := g.transitions[source]
	return t, ok
}

// NodeNames returns the names of all nodes in the graph, sorted.
func (g *Graph) NodeNames() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

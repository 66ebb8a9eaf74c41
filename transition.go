package stategraph

import (
	"context"
	"sort"
)

// DecisionFunc chooses an outcome key for a conditional edge based on the
// current state. The returned key is looked up in the edge's outcome map; a
// key with no mapping ends the execution normally.
type DecisionFunc func(ctx context.Context, state State) string

// Transition is one outgoing connection from a node. It is a closed sum of
// two cases: Edge (unconditional) and ConditionalEdge (data-dependent).
type Transition interface {

	// Source returns the name of the node the transition leaves from.
	Source() string

	// PossibleTargets returns every node name the transition could route to.
	// Used for validation and cycle detection.
	PossibleTargets() []string

	// sealed prevents transition implementations outside this package.
	sealed()
}

// Edge is an unconditional transition to a fixed target node.
type Edge struct {
	source string
	target string
}

// NewEdge creates an unconditional transition from source to target.
func NewEdge(source, target string) *Edge {
	return &Edge{source: source, target: target}
}

func (e *Edge) Source() string {
	return e.source
}

// Target returns the fixed target node name
func (e *Edge) Target() string {
	return e.target
}

func (e *Edge) PossibleTargets() []string {
	return []string{e.target}
}

func (e *Edge) sealed() {}

// ConditionalEdge is a transition whose target is chosen at runtime by a
// decision function. The function's result is looked up in the outcome map.
type ConditionalEdge struct {
	source   string
	decide   DecisionFunc
	outcomes map[string]string
}

// NewConditionalEdge creates a conditional transition from source. The
// outcomes map associates decision outcomes with target node names.
func NewConditionalEdge(source string, decide DecisionFunc, outcomes map[string]string) *ConditionalEdge {
	copied := make(map[string]string, len(outcomes))
	for k, v := range outcomes {
		copied[k] = v
	}
	return &ConditionalEdge{source: source, decide: decide, outcomes: copied}
}

func (e *ConditionalEdge) Source() string {
	return e.source
}

// Decide evaluates the decision function against the given state.
func (e *ConditionalEdge) Decide(ctx context.Context, state State) string {
	return e.decide(ctx, state)
}

// Target returns the target node for an outcome key.
func (e *ConditionalEdge) Target(outcome string) (string, bool) {
	target, ok := e.outcomes[outcome]
	return target, ok
}

// Outcomes returns a copy of the outcome map.
func (e *ConditionalEdge) Outcomes() map[string]string {
	out := make(map[string]string, len(e.outcomes))
	for k, v := range e.outcomes {
		out[k] = v
	}
	return out
}

func (e *ConditionalEdge) PossibleTargets() []string {
	targets := make([]string, 0, len(e.outcomes))
	for _, target := range e.outcomes {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}

func (e *ConditionalEdge) sealed() {}

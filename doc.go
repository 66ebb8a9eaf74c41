// Package stategraph is a small workflow runtime for resumable, validated
// state-graph execution. Callers declare named nodes and wire them with
// unconditional and conditional transitions through a GraphBuilder, which
// validates the structure (unique names, known references, acyclicity) before
// producing an immutable Graph. An Executor runs a graph step by step against
// an evolving state value, and a CheckpointManager persists (workflow, node,
// state) snapshots behind a pluggable store so runs can be paused and resumed.
package stategraph

package stategraph

// GraphBuilder accumulates node and transition declarations and validates
// them into an immutable Graph. Structural errors are reported as early as
// possible: bad references fail at declaration time, missing entry points and
// cycles fail at Build time.
type GraphBuilder struct {
	nodes       map[string]*Node
	transitions map[string]Transition
	entryPoint  string
	hasEntry    bool
}

// NewGraphBuilder returns an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		nodes:       map[string]*Node{},
		transitions: map[string]Transition{},
	}
}

// AddNode registers a named node with its handler. Node names must be unique
// within a graph.
func (b *GraphBuilder) AddNode(name string, handler Handler) error {
	if _, exists := b.nodes[name]; exists {
		return &DuplicateNodeError{Name: name}
	}
	b.nodes[name] = NewNode(name, handler)
	return nil
}

// AddEdge registers an unconditional transition from source to target. Both
// endpoints must already be registered.
func (b *GraphBuilder) AddEdge(source, target string) error {
	if _, ok := b.nodes[source]; !ok {
		return &UnknownNodeError{Name: source}
	}
	if _, ok := b.nodes[target]; !ok {
		return &UnknownNodeError{Name: target}
	}
	if _, exists := b.transitions[source]; exists {
		return &DuplicateEdgeError{Source: source}
	}
	b.transitions[source] = NewEdge(source, target)
	return nil
}

// AddConditionalEdge registers a data-dependent transition from source. Every
// target named in the outcome map must already be registered. The decision
// function itself is opaque; outcomes it produces at runtime that are absent
// from the map end the execution normally.
func (b *GraphBuilder) AddConditionalEdge(source string, decide DecisionFunc, outcomes map[string]string) error {
	if _, ok := b.nodes[source]; !ok {
		return &UnknownNodeError{Name: source}
	}
	for _, target := range outcomes {
		if _, ok := b.nodes[target]; !ok {
			return &UnknownNodeError{Name: target}
		}
	}
	if _, exists := b.transitions[source]; exists {
		return &DuplicateEdgeError{Source: source}
	}
	b.transitions[source] = NewConditionalEdge(source, decide, outcomes)
	return nil
}

// SetEntryPoint marks the node execution begins at. The node must already be
// registered; unknown names fail here, not at Build time.
func (b *GraphBuilder) SetEntryPoint(name string) error {
	if _, ok := b.nodes[name]; !ok {
		return &UnknownNodeError{Name: name}
	}
	b.entryPoint = name
	b.hasEntry = true
	return nil
}

// Build validates the accumulated declarations and freezes them into a Graph.
// Both outcomes of every conditional edge count as edges for cycle detection:
// acyclicity is a structural guarantee checked once here, not a property
// verified lazily during execution.
func (b *GraphBuilder) Build() (*Graph, error) {
	if !b.hasEntry {
		return nil, &MissingEntryPointError{}
	}
	if err := b.detectCycles(); err != nil {
		return nil, err
	}

	nodes := make(map[string]*Node, len(b.nodes))
	for name, node := range b.nodes {
		nodes[name] = node
	}
	transitions := make(map[string]Transition, len(b.transitions))
	for source, t := range b.transitions {
		transitions[source] = t
	}
	return &Graph{
		nodes:       nodes,
		transitions: transitions,
		entryPoint:  b.entryPoint,
	}, nil
}

// frame is one level of the iterative depth-first traversal: a node plus the
// position of the next outgoing target to visit.
type frame struct {
	node    string
	targets []string
	next    int
}

// detectCycles runs an iterative depth-first traversal from the entry point,
// following all declared edges. The traversal is iterative rather than
// recursive to avoid stack depth limits on large graphs.
func (b *GraphBuilder) detectCycles() error {
	visited := map[string]bool{}
	onStack := map[string]bool{}

	stack := []*frame{{node: b.entryPoint, targets: b.outgoingTargets(b.entryPoint)}}
	onStack[b.entryPoint] = true
	visited[b.entryPoint] = true

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.targets) {
			onStack[top.node] = false
			stack = stack[:len(stack)-1]
			continue
		}
		target := top.targets[top.next]
		top.next++

		if onStack[target] {
			return &CycleDetectedError{Path: cyclePath(stack, target)}
		}
		if visited[target] {
			continue
		}
		visited[target] = true
		onStack[target] = true
		stack = append(stack, &frame{node: target, targets: b.outgoingTargets(target)})
	}
	return nil
}

// outgoingTargets returns every node the given node could transition to.
func (b *GraphBuilder) outgoingTargets(name string) []string {
	t, ok := b.transitions[name]
	if !ok {
		return nil
	}
	return t.PossibleTargets()
}

// cyclePath reconstructs the cycle from the traversal stack: the segment from
// the repeated node to the top of the stack, closed by the repeated node.
func cyclePath(stack []*frame, repeated string) []string {
	start := 0
	for i, f := range stack {
		if f.node == repeated {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.node)
	}
	return append(path, repeated)
}

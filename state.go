package stategraph

// State is the value threaded through a graph execution. Each node handler
// receives the current state and returns the next one. The engine treats it
// as an opaque payload; the map form exists so checkpoints are JSON
// serializable.
type State map[string]any

// Copy returns a shallow copy of the state. A nil state copies to an empty,
// non-nil state.
func (s State) Copy() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Get returns the value of a state key.
func (s State) Get(key string) (any, bool) {
	value, exists := s[key]
	return value, exists
}

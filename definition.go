package stategraph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HandlerFactory builds a Handler from declarative parameters.
type HandlerFactory func(params map[string]any) (Handler, error)

// HandlerRegistry maps handler names to factories, used when compiling
// declarative graph definitions.
type HandlerRegistry map[string]HandlerFactory

// NodeDefinition declares one node of a graph definition.
type NodeDefinition struct {
	Name       string         `json:"name" yaml:"name"`
	Handler    string         `json:"handler" yaml:"handler"`
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// EdgeDefinition declares one transition. Either Target is set
// (unconditional), or Condition and Outcomes are set: Condition is an
// expression producing an outcome key, and Outcomes maps keys to targets.
type EdgeDefinition struct {
	Source    string            `json:"source" yaml:"source"`
	Target    string            `json:"target,omitempty" yaml:"target,omitempty"`
	Condition string            `json:"condition,omitempty" yaml:"condition,omitempty"`
	Outcomes  map[string]string `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

// Definition is a declarative graph description, typically loaded from YAML.
// It is compiled against a HandlerRegistry to produce an executable Graph.
type Definition struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	EntryPoint  string            `json:"entry_point,omitempty" yaml:"entry_point,omitempty"`
	Nodes       []*NodeDefinition `json:"nodes" yaml:"nodes"`
	Edges       []*EdgeDefinition `json:"edges,omitempty" yaml:"edges,omitempty"`
	State       map[string]any    `json:"state,omitempty" yaml:"state,omitempty"`
}

// LoadDefinitionFile loads a graph definition from a YAML file
func LoadDefinitionFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}
	return LoadDefinitionString(string(data))
}

// LoadDefinitionString loads a graph definition from a YAML string
func LoadDefinitionString(data string) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal([]byte(data), &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definition: %w", err)
	}
	return &def, nil
}

// InitialState returns the definition's initial state as a State value.
func (d *Definition) InitialState() State {
	return State(d.State).Copy()
}

// Compile resolves handler names against the registry, wires the declared
// edges, and builds the graph. The entry point defaults to the first declared
// node.
func (d *Definition) Compile(registry HandlerRegistry) (*Graph, error) {
	if len(d.Nodes) == 0 {
		return nil, fmt.Errorf("definition has no nodes")
	}

	builder := NewGraphBuilder()
	for _, node := range d.Nodes {
		if node.Name == "" {
			return nil, fmt.Errorf("node name required")
		}
		factory, ok := registry[node.Handler]
		if !ok {
			return nil, fmt.Errorf("unknown handler %q for node %q", node.Handler, node.Name)
		}
		handler, err := factory(node.Parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to build handler for node %q: %w", node.Name, err)
		}
		if err := builder.AddNode(node.Name, handler); err != nil {
			return nil, err
		}
	}

	for _, edge := range d.Edges {
		if edge.Condition != "" {
			decide, err := NewExprDecision(edge.Condition)
			if err != nil {
				return nil, err
			}
			if err := builder.AddConditionalEdge(edge.Source, decide, edge.Outcomes); err != nil {
				return nil, err
			}
			continue
		}
		if edge.Target == "" {
			return nil, fmt.Errorf("edge from %q needs a target or a condition", edge.Source)
		}
		if err := builder.AddEdge(edge.Source, edge.Target); err != nil {
			return nil, err
		}
	}

	entryPoint := d.EntryPoint
	if entryPoint == "" {
		entryPoint = d.Nodes[0].Name
	}
	if err := builder.SetEntryPoint(entryPoint); err != nil {
		return nil, err
	}
	return builder.Build()
}

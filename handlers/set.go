package handlers

import (
	"context"
	"errors"

	"github.com/deepnoodle-ai/stategraph"
)

// SetHandler sets a single state key to a fixed value.
type SetHandler struct {
	key   string
	value any
}

// NewSetHandler creates a handler that sets key to value.
func NewSetHandler(key string, value any) *SetHandler {
	return &SetHandler{key: key, value: value}
}

func (h *SetHandler) Execute(ctx context.Context, state stategraph.State) (stategraph.State, error) {
	next := state.Copy()
	next[h.key] = h.value
	return next, nil
}

// SetFactory builds a SetHandler from "key" and "value" parameters.
func SetFactory(params map[string]any) (stategraph.Handler, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return nil, errors.New("set handler requires 'key' parameter")
	}
	value, ok := params["value"]
	if !ok {
		return nil, errors.New("set handler requires 'value' parameter")
	}
	return NewSetHandler(key, value), nil
}

// DeleteHandler removes a single key from the state.
type DeleteHandler struct {
	key string
}

// NewDeleteHandler creates a handler that deletes key.
func NewDeleteHandler(key string) *DeleteHandler {
	return &DeleteHandler{key: key}
}

func (h *DeleteHandler) Execute(ctx context.Context, state stategraph.State) (stategraph.State, error) {
	next := state.Copy()
	delete(next, h.key)
	return next, nil
}

// DeleteFactory builds a DeleteHandler from a "key" parameter.
func DeleteFactory(params map[string]any) (stategraph.Handler, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return nil, errors.New("delete handler requires 'key' parameter")
	}
	return NewDeleteHandler(key), nil
}

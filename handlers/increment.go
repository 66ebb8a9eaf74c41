package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/stategraph"
)

// IncrementHandler adds a fixed amount to a numeric state key. A missing key
// starts at zero.
type IncrementHandler struct {
	key    string
	amount float64
}

// NewIncrementHandler creates a handler that adds amount to key.
func NewIncrementHandler(key string, amount float64) *IncrementHandler {
	return &IncrementHandler{key: key, amount: amount}
}

func (h *IncrementHandler) Execute(ctx context.Context, state stategraph.State) (stategraph.State, error) {
	current, err := toFloat(state[h.key])
	if err != nil {
		return nil, fmt.Errorf("increment handler: key %q: %w", h.key, err)
	}
	next := state.Copy()
	next[h.key] = current + h.amount
	return next, nil
}

// IncrementFactory builds an IncrementHandler from "key" and an optional
// "amount" parameter (default 1).
func IncrementFactory(params map[string]any) (stategraph.Handler, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return nil, errors.New("increment handler requires 'key' parameter")
	}
	amount := 1.0
	if raw, ok := params["amount"]; ok {
		parsed, err := toFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("increment handler: amount: %w", err)
		}
		amount = parsed
	}
	return NewIncrementHandler(key, amount), nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", value, value)
	}
}

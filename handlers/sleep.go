package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deepnoodle-ai/stategraph"
)

// SleepHandler waits for a fixed duration, honoring context cancellation.
// The state passes through unchanged.
type SleepHandler struct {
	duration time.Duration
}

// NewSleepHandler creates a handler that sleeps for the given duration.
func NewSleepHandler(duration time.Duration) *SleepHandler {
	return &SleepHandler{duration: duration}
}

func (h *SleepHandler) Execute(ctx context.Context, state stategraph.State) (stategraph.State, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(h.duration):
		return state, nil
	}
}

// SleepFactory builds a SleepHandler from a "duration" parameter, given as a
// duration string ("250ms") or a float in seconds.
func SleepFactory(params map[string]any) (stategraph.Handler, error) {
	raw, ok := params["duration"]
	if !ok {
		return nil, errors.New("sleep handler requires 'duration' parameter")
	}
	var duration time.Duration
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid duration format: %w", err)
		}
		duration = parsed
	case float64:
		duration = time.Duration(v * float64(time.Second))
	case int:
		duration = time.Duration(v) * time.Second
	default:
		return nil, errors.New("duration must be a string or a number of seconds")
	}
	if duration <= 0 {
		return nil, errors.New("duration must be positive")
	}
	return NewSleepHandler(duration), nil
}

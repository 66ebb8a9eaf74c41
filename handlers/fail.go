package handlers

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/stategraph"
)

// FailHandler always returns an error. Useful for exercising failure paths.
type FailHandler struct {
	message string
}

// NewFailHandler creates a handler that fails with the given message.
func NewFailHandler(message string) *FailHandler {
	if message == "" {
		message = "intentional failure for testing"
	}
	return &FailHandler{message: message}
}

func (h *FailHandler) Execute(ctx context.Context, state stategraph.State) (stategraph.State, error) {
	return nil, fmt.Errorf("fail handler: %s", h.message)
}

// FailFactory builds a FailHandler from an optional "message" parameter.
func FailFactory(params map[string]any) (stategraph.Handler, error) {
	message, _ := params["message"].(string)
	return NewFailHandler(message), nil
}

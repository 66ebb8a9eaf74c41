package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/deepnoodle-ai/stategraph"
)

var statePlaceholder = regexp.MustCompile(`\$\{state\.([a-zA-Z0-9_]+)\}`)

// PrintHandler prints a message to stdout, substituting `${state.key}`
// placeholders with state values. The state passes through unchanged.
type PrintHandler struct {
	message string
}

// NewPrintHandler creates a handler that prints message.
func NewPrintHandler(message string) *PrintHandler {
	return &PrintHandler{message: message}
}

func (h *PrintHandler) Execute(ctx context.Context, state stategraph.State) (stategraph.State, error) {
	message := statePlaceholder.ReplaceAllStringFunc(h.message, func(match string) string {
		key := statePlaceholder.FindStringSubmatch(match)[1]
		if value, ok := state.Get(key); ok {
			return fmt.Sprint(value)
		}
		return match
	})
	fmt.Println(message)
	return state, nil
}

// PrintFactory builds a PrintHandler from a "message" parameter.
func PrintFactory(params map[string]any) (stategraph.Handler, error) {
	message, ok := params["message"].(string)
	if !ok {
		return nil, errors.New("print handler requires 'message' parameter")
	}
	return NewPrintHandler(message), nil
}

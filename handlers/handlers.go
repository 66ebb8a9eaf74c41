// Package handlers provides built-in node handlers for declarative graph
// definitions: small state transformers that cover common wiring and testing
// needs without any domain logic.
package handlers

import (
	"github.com/deepnoodle-ai/stategraph"
)

// Registry returns a handler registry containing all built-in handlers.
func Registry() stategraph.HandlerRegistry {
	return stategraph.HandlerRegistry{
		"set":       SetFactory,
		"delete":    DeleteFactory,
		"increment": IncrementFactory,
		"print":     PrintFactory,
		"sleep":     SleepFactory,
		"fail":      FailFactory,
	}
}

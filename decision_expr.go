package stategraph

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// NewExprDecision compiles an expression into a DecisionFunc. The expression
// is evaluated with the current state as its environment, so state keys are
// referenced directly, e.g. `value > 0 ? "positive" : "negative"`.
// Non-string results are formatted to their string form. An evaluation error
// yields an empty outcome, which ends the run unless "" is a mapped outcome.
func NewExprDecision(code string) (DecisionFunc, error) {
	program, err := expr.Compile(code,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile decision expression %q: %w", code, err)
	}
	return func(ctx context.Context, state State) string {
		return runDecision(ctx, program, state)
	}, nil
}

func runDecision(ctx context.Context, program *vm.Program, state State) string {
	out, err := expr.Run(program, map[string]any(state.Copy()))
	if err != nil {
		if logger, ok := GetLoggerFromContext(ctx); ok {
			logger.Warn("decision expression failed", "error", err)
		}
		return ""
	}
	switch v := out.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

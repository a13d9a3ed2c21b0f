package lang

import (
	"errors"
	"fmt"
)

// Evaluate lexes, parses and evaluates a single expression against the
// system clock and renders the result.
func Evaluate(input string) (string, error) {
	return defaultEvaluator.Evaluate(input)
}

// Evaluate lexes, parses and evaluates a single expression and renders the
// result. Errors are prefixed with the failing stage; the underlying
// *ParseError or *EvalError stays reachable through errors.As.
func (e *Evaluator) Evaluate(input string) (string, error) {
	val, err := e.EvalLine(input)
	if err != nil {
		return "", err
	}
	return val.String(), nil
}

// EvalLine is Evaluate without the final rendering step.
func (e *Evaluator) EvalLine(input string) (Value, error) {
	node, err := ParseLine(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expression: %w", err)
	}
	val, err := e.Eval(node)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate expression: %w", err)
	}
	return val, nil
}

// Stage names the pipeline stage an Evaluate error came from:
// "parse", "evaluate", or "" for foreign errors.
func Stage(err error) string {
	switch {
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrEval):
		return "evaluate"
	default:
		return ""
	}
}

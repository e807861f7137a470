// Package tools defines the Tool type and the tools the agent can call
// against the solver service.
package tools

import (
	"context"
	"fmt"
	"math"
)

// Tool represents a callable function the LLM can invoke
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Execute     func(ctx context.Context, input map[string]interface{}) (string, error)
}

// Find returns the tool with the given name.
func Find(tools []Tool, name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// intArg converts a decoded JSON number to int, rejecting fractions.
func intArg(v interface{}, field string) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("%s must be an integer, got %v", field, n)
		}
		if n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, fmt.Errorf("%s out of range: %v", field, n)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case nil:
		return 0, fmt.Errorf("%s is required", field)
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", field, v)
	}
}

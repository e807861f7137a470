package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sumcheck/sumcheck/internal/service"
)

// SolveSubsetSumTool decides a subset-sum question through the solver service
func SolveSubsetSumTool(svc *service.SolverService) Tool {
	return Tool{
		Name:        "solve_subset_sum",
		Description: "Decide whether some subset of the given positive integers sums exactly to the target. Each number may be used at most once. Returns the verdict and a solve id.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"magnitudes": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer", "minimum": 1},
					"description": "The positive integers to choose from",
				},
				"target": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"description": "The exact sum a subset must reach",
				},
			},
			"required": []string{"magnitudes", "target"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			raw, ok := input["magnitudes"].([]interface{})
			if !ok {
				return "", fmt.Errorf("magnitudes must be an array of integers")
			}
			magnitudes := make([]int, len(raw))
			for i, v := range raw {
				n, err := intArg(v, fmt.Sprintf("magnitudes[%d]", i))
				if err != nil {
					return "", err
				}
				magnitudes[i] = n
			}
			target, err := intArg(input["target"], "target")
			if err != nil {
				return "", err
			}

			rc := RunContextFrom(ctx)
			out, err := svc.Solve(ctx, service.SolveInput{
				Magnitudes: magnitudes,
				Target:     target,
				Source:     service.SourceAgent,
				APIKey:     rc.APIKey,
			})
			if err != nil {
				return "", fmt.Errorf("solve: %w", err)
			}
			rc.recordSolve(out.ID, out.Result)

			b, err := json.Marshal(map[string]interface{}{
				"solve_id": out.ID,
				"result":   out.Result,
				"n":        out.N,
				"target":   out.Target,
			})
			if err != nil {
				return "", fmt.Errorf("marshal solve result: %w", err)
			}
			return string(b), nil
		},
	}
}

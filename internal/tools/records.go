package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sumcheck/sumcheck/internal/service"
)

// GetSolveRecordTool looks up a previous solve by id
func GetSolveRecordTool(svc *service.SolverService) Tool {
	return Tool{
		Name:        "get_solve_record",
		Description: "Fetch a previously computed subset-sum verdict by its solve id.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "The solve id returned by solve_subset_sum",
				},
			},
			"required": []string{"id"},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			id, _ := input["id"].(string)
			if id == "" {
				return "", fmt.Errorf("id is required")
			}
			rec, err := svc.Record(ctx, id)
			if err != nil {
				return "", fmt.Errorf("get record: %w", err)
			}
			b, err := json.Marshal(map[string]interface{}{
				"solve_id":   rec.ID,
				"magnitudes": rec.Magnitudes,
				"target":     rec.Target,
				"result":     rec.Result,
				"created_at": rec.CreatedAt,
			})
			if err != nil {
				return "", fmt.Errorf("marshal record: %w", err)
			}
			return string(b), nil
		},
	}
}

// ListRecentSolvesTool lists the most recent verdicts
func ListRecentSolvesTool(svc *service.SolverService) Tool {
	return Tool{
		Name:        "list_recent_solves",
		Description: "List the most recent subset-sum verdicts, newest first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Number of records to return (default: 5, max: 50)",
				},
			},
			"required": []string{},
		},
		Execute: func(ctx context.Context, input map[string]interface{}) (string, error) {
			limit := 5
			if v, ok := input["limit"]; ok {
				n, err := intArg(v, "limit")
				if err != nil {
					return "", err
				}
				limit = n
			}
			if limit <= 0 {
				limit = 5
			}
			if limit > 50 {
				limit = 50
			}

			recs, err := svc.Recent(ctx, limit)
			if err != nil {
				return "", fmt.Errorf("list records: %w", err)
			}
			out := make([]map[string]interface{}, 0, len(recs))
			for _, rec := range recs {
				out = append(out, map[string]interface{}{
					"solve_id": rec.ID,
					"n":        len(rec.Magnitudes),
					"target":   rec.Target,
					"result":   rec.Result,
				})
			}
			b, err := json.Marshal(out)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}
}

// All returns every tool backed by svc
func All(svc *service.SolverService) []Tool {
	return []Tool{
		SolveSubsetSumTool(svc),
		GetSolveRecordTool(svc),
		ListRecentSolvesTool(svc),
	}
}

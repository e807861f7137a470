package models

import "time"

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// SolveResponse is returned by POST /api/v1/solve
type SolveResponse struct {
	Status     string  `json:"status"`
	ID         string  `json:"id"`
	Result     bool    `json:"result"`
	N          int     `json:"n"`
	Target     int     `json:"target"`
	Cells      int     `json:"cells"`
	DurationMs float64 `json:"duration_ms"`
	Shared     bool    `json:"shared"`
}

// SolveRecord is the public view of a persisted solve
type SolveRecord struct {
	ID         string    `json:"id"`
	Magnitudes []int     `json:"magnitudes"`
	Target     int       `json:"target"`
	Result     bool      `json:"result"`
	Cells      int       `json:"cells"`
	DurationMs float64   `json:"duration_ms"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

// AgentResponse is returned by POST /api/v1/agent
type AgentResponse struct {
	Status        string                 `json:"status"`
	Prompt        string                 `json:"prompt"`
	Answer        *string                `json:"answer,omitempty"`
	Verdict       *bool                  `json:"verdict,omitempty"`
	SolveID       *string                `json:"solve_id,omitempty"`
	AgentMetadata map[string]interface{} `json:"agent_metadata"`
}

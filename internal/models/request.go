package models

// SolveRequest for POST /api/v1/solve
type SolveRequest struct {
	Magnitudes []int `json:"magnitudes" validate:"max=1000000"`
	Target     *int  `json:"target" validate:"required"`
}

// AgentRequest for POST /api/v1/agent
type AgentRequest struct {
	Prompt  string `json:"prompt" validate:"required"`
	Timeout int    `json:"timeout"`
	// ForceAgent skips the local prompt parser and always asks the LLM.
	ForceAgent bool `json:"force_agent"`
}

func (r *AgentRequest) SetDefaults() {
	if r.Timeout == 0 {
		r.Timeout = 120
	}
	if r.Timeout < 10 {
		r.Timeout = 10
	}
	if r.Timeout > 600 {
		r.Timeout = 600
	}
}

// ListRequest holds query parameters for GET /api/v1/solves
type ListRequest struct {
	Limit int `validate:"gte=0,lte=500"`
}

func (r *ListRequest) SetDefaults() {
	if r.Limit == 0 {
		r.Limit = 20
	}
}

package security

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// AuditLogger logs security-relevant events with hashed identifiers
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// SolveEvent describes one solver invocation for the audit trail.
type SolveEvent struct {
	ID         string
	APIKey     string
	Source     string
	N          int
	Target     int
	Cells      int
	DurationMs float64
	Result     bool
	Shared     bool
	Err        string
}

// LogSolve records a solver execution event
func (a *AuditLogger) LogSolve(e SolveEvent) {
	if !a.enabled {
		return
	}
	evt := log.Info().
		Str("event", "solve_audit").
		Str("solve_id", e.ID).
		Str("api_key_hash", HashKey(e.APIKey)).
		Str("source", e.Source).
		Int("n", e.N).
		Int("target", e.Target).
		Int("cells", e.Cells).
		Float64("duration_ms", e.DurationMs).
		Bool("shared", e.Shared).
		Bool("success", e.Err == "")

	if e.Err != "" {
		evt = evt.Str("error", e.Err)
	} else {
		evt = evt.Bool("result", e.Result)
	}
	evt.Msg("audit")
}

// LogAgentRequest records an agent request event
func (a *AuditLogger) LogAgentRequest(
	prompt, apiKey, route string,
	toolsUsed []string,
	validationPassed bool,
	executionTimeMs int64,
) {
	if !a.enabled {
		return
	}
	log.Info().
		Str("event", "agent_audit").
		Str("prompt_hash", HashKey(prompt)).
		Str("api_key_hash", HashKey(apiKey)).
		Str("route", route).
		Str("tools_used", strings.Join(toolsUsed, ",")).
		Bool("validation_passed", validationPassed).
		Int64("execution_time_ms", executionTimeMs).
		Msg("agent audit")
}

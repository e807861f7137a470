package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sumcheck/sumcheck/internal/models"
	"github.com/sumcheck/sumcheck/internal/security"
	"github.com/sumcheck/sumcheck/internal/service"
	"github.com/sumcheck/sumcheck/internal/tools"
)

// ErrAgentUnavailable is returned when a prompt needs the LLM but no agent is configured.
var ErrAgentUnavailable = errors.New("agent is not configured")

// ErrPromptRejected is returned when prompt validation fails.
var ErrPromptRejected = errors.New("prompt validation failed")

// SolveHandler answers natural-language subset-sum questions: simple
// prompts are parsed and solved locally, everything else goes through the
// tool-calling agent.
type SolveHandler struct {
	agent       *Agent
	svc         *service.SolverService
	parser      *service.PromptParser
	promptVal   *security.PromptValidator
	auditLogger *security.AuditLogger
}

// NewSolveHandler wires the handler; agent may be nil, in which case only
// locally parseable prompts are answered.
func NewSolveHandler(
	agent *Agent,
	svc *service.SolverService,
	parser *service.PromptParser,
	promptVal *security.PromptValidator,
	auditLogger *security.AuditLogger,
) *SolveHandler {
	return &SolveHandler{
		agent:       agent,
		svc:         svc,
		parser:      parser,
		promptVal:   promptVal,
		auditLogger: auditLogger,
	}
}

// Handle processes an agent request. When the returned error is non-nil and
// the response is non-nil, the response describes the rejection.
func (h *SolveHandler) Handle(ctx context.Context, req *models.AgentRequest, apiKey, requestID string) (*models.AgentResponse, error) {
	start := time.Now()
	metadata := map[string]interface{}{}
	if h.agent != nil {
		metadata["agent"] = h.agent.Name()
		metadata["model"] = h.agent.Model()
	}

	// 1. Prompt validation
	vr := h.promptVal.Validate(req.Prompt)
	if !vr.Valid {
		metadata["prompt_validation"] = "blocked: " + vr.Message
		h.auditLogger.LogAgentRequest(req.Prompt, apiKey, "rejected", nil, false, time.Since(start).Milliseconds())
		return &models.AgentResponse{
			Status:        "error",
			Prompt:        req.Prompt,
			AgentMetadata: metadata,
		}, fmt.Errorf("%w: %s", ErrPromptRejected, vr.Message)
	}
	metadata["prompt_validation"] = "passed"

	// 2. Local fast path
	if !req.ForceAgent {
		parsed, ok := h.parser.Parse(req.Prompt)
		metadata["parser_confidence"] = parsed.Confidence
		metadata["parser_reasoning"] = parsed.Reasoning
		if ok {
			return h.answerParsed(ctx, req, parsed, apiKey, metadata, start)
		}
	}

	// 3. Agent loop
	if h.agent == nil {
		h.auditLogger.LogAgentRequest(req.Prompt, apiKey, "unavailable", nil, true, time.Since(start).Milliseconds())
		return nil, ErrAgentUnavailable
	}

	rc := &tools.RunContext{RequestID: requestID, APIKey: apiKey}
	agentCtx, cancel := context.WithTimeout(tools.WithRunContext(ctx, rc), time.Duration(req.Timeout)*time.Second)
	defer cancel()

	result, err := h.agent.Run(agentCtx, req.Prompt)
	if err != nil {
		h.auditLogger.LogAgentRequest(req.Prompt, apiKey, "agent", toolsUsed(result), true, time.Since(start).Milliseconds())
		return nil, fmt.Errorf("agent run: %w", err)
	}

	metadata["route"] = "agent"
	metadata["tools_used"] = result.ToolsUsed
	metadata["iterations"] = result.Iterations

	resp := &models.AgentResponse{
		Status:        "success",
		Prompt:        req.Prompt,
		Answer:        &result.Text,
		AgentMetadata: metadata,
	}
	if last, ok := rc.LastSolve(); ok {
		verdict, id := last.Result, last.ID
		resp.Verdict = &verdict
		resp.SolveID = &id
	} else {
		log.Debug().Str("request_id", requestID).Msg("agent answered without calling the solver")
	}

	execMs := time.Since(start).Milliseconds()
	metadata["execution_time_ms"] = execMs
	h.auditLogger.LogAgentRequest(req.Prompt, apiKey, "agent", result.ToolsUsed, true, execMs)
	return resp, nil
}

func (h *SolveHandler) answerParsed(
	ctx context.Context,
	req *models.AgentRequest,
	parsed service.ParsedPrompt,
	apiKey string,
	metadata map[string]interface{},
	start time.Time,
) (*models.AgentResponse, error) {
	metadata["route"] = "parser"
	metadata["magnitudes"] = parsed.Magnitudes
	metadata["target"] = parsed.Target

	out, err := h.svc.Solve(ctx, service.SolveInput{
		Magnitudes: parsed.Magnitudes,
		Target:     parsed.Target,
		Source:     service.SourceParser,
		APIKey:     apiKey,
	})
	if err != nil {
		h.auditLogger.LogAgentRequest(req.Prompt, apiKey, "parser", nil, true, time.Since(start).Milliseconds())
		return &models.AgentResponse{
			Status:        "error",
			Prompt:        req.Prompt,
			AgentMetadata: metadata,
		}, err
	}

	answer := describeVerdict(parsed.Magnitudes, parsed.Target, out.Result)
	verdict, id := out.Result, out.ID
	execMs := time.Since(start).Milliseconds()
	metadata["execution_time_ms"] = execMs
	h.auditLogger.LogAgentRequest(req.Prompt, apiKey, "parser", nil, true, execMs)

	return &models.AgentResponse{
		Status:        "success",
		Prompt:        req.Prompt,
		Answer:        &answer,
		Verdict:       &verdict,
		SolveID:       &id,
		AgentMetadata: metadata,
	}, nil
}

func describeVerdict(magnitudes []int, target int, ok bool) string {
	if ok {
		return fmt.Sprintf("Yes. Some subset of %v sums to %d.", magnitudes, target)
	}
	return fmt.Sprintf("No. No subset of %v sums to %d.", magnitudes, target)
}

func toolsUsed(r *RunResult) []string {
	if r == nil {
		return nil
	}
	return r.ToolsUsed
}

package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"

	"github.com/sumcheck/sumcheck/internal/tools"
)

const (
	defaultModel         = "claude-sonnet-4-6"
	defaultMaxTokens     = 2048
	defaultMaxIterations = 6
)

// Config declares an agent: who it is, how it should behave, which model
// backs it and how long its tool loop may run.
type Config struct {
	Name          string
	Instructions  string
	Model         string
	MaxTokens     int
	MaxIterations int

	APIKey  string
	BaseURL string // override for Anthropic-compatible proxies
}

// ToolCall represents a tool invocation request from the LLM
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]interface{}
}

// RunResult is the outcome of one agent run.
type RunResult struct {
	Text       string
	ToolsUsed  []string
	Iterations int
}

// Agent runs a multi-turn tool-calling loop against Anthropic Claude or a
// compatible provider.
type Agent struct {
	client *anthropic.Client
	cfg    Config
	tools  []tools.Tool
}

// New creates an agent from cfg with the given tools.
func New(cfg Config, agentTools []tools.Tool, opts ...option.RequestOption) *Agent {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &Agent{
		client: anthropic.NewClient(reqOpts...),
		cfg:    cfg,
		tools:  agentTools,
	}
}

func (a *Agent) Name() string  { return a.cfg.Name }
func (a *Agent) Model() string { return a.cfg.Model }

// Run executes the agent loop: the LLM calls tools until it stops asking for them.
func (a *Agent) Run(ctx context.Context, userPrompt string) (*RunResult, error) {
	toolParams := buildToolParams(a.tools)

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
	}
	result := &RunResult{}

	for iter := 0; iter < a.cfg.MaxIterations; iter++ {
		result.Iterations = iter + 1

		params := anthropic.MessageNewParams{
			Model:     anthropic.F(anthropic.Model(a.cfg.Model)),
			MaxTokens: anthropic.F(int64(a.cfg.MaxTokens)),
			Messages:  anthropic.F(messages),
			Tools:     anthropic.F(toolParams),
		}
		if a.cfg.Instructions != "" {
			params.System = anthropic.F([]anthropic.TextBlockParam{
				anthropic.NewTextBlock(a.cfg.Instructions),
			})
		}

		resp, err := a.client.Messages.New(ctx, params)
		if err != nil {
			return result, fmt.Errorf("LLM call failed: %w", err)
		}

		var textContent string
		var pendingToolCalls []ToolCall
		for _, block := range resp.Content {
			switch b := block.AsUnion().(type) {
			case anthropic.TextBlock:
				textContent += b.Text
			case anthropic.ToolUseBlock:
				var input map[string]interface{}
				if err := json.Unmarshal(b.Input, &input); err != nil {
					log.Warn().Err(err).Str("tool", b.Name).Msg("failed to parse tool input")
					input = map[string]interface{}{}
				}
				pendingToolCalls = append(pendingToolCalls, ToolCall{
					ID:    b.ID,
					Name:  b.Name,
					Input: input,
				})
			}
		}

		log.Debug().
			Str("agent", a.cfg.Name).
			Int("iter", iter).
			Str("stop_reason", string(resp.StopReason)).
			Int("tool_calls", len(pendingToolCalls)).
			Msg("agent iteration")

		if resp.StopReason != "tool_use" || len(pendingToolCalls) == 0 {
			result.Text = textContent
			return result, nil
		}

		messages = append(messages, resp.ToParam())

		var toolResults []anthropic.ContentBlockParamUnion
		for _, tc := range pendingToolCalls {
			result.ToolsUsed = append(result.ToolsUsed, tc.Name)
			out, execErr := executeTool(ctx, tc, a.tools)
			if execErr != nil {
				log.Warn().Err(execErr).Str("tool", tc.Name).Msg("tool execution error")
				out = fmt.Sprintf("error: %v", execErr)
			}
			toolResults = append(toolResults, anthropic.NewToolResultBlock(tc.ID, out, execErr != nil))
		}
		messages = append(messages, anthropic.NewUserMessage(toolResults...))
	}

	return result, fmt.Errorf("agent loop exceeded max iterations (%d)", a.cfg.MaxIterations)
}

func buildToolParams(agentTools []tools.Tool) []anthropic.ToolUnionUnionParam {
	params := make([]anthropic.ToolUnionUnionParam, len(agentTools))
	for i, t := range agentTools {
		schema := map[string]interface{}{
			"type":       "object",
			"properties": t.InputSchema["properties"],
		}
		if required, ok := t.InputSchema["required"]; ok {
			schema["required"] = required
		}
		params[i] = anthropic.ToolParam{
			Name:        anthropic.String(t.Name),
			Description: anthropic.String(t.Description),
			InputSchema: anthropic.F[interface{}](schema),
		}
	}
	return params
}

func executeTool(ctx context.Context, tc ToolCall, agentTools []tools.Tool) (string, error) {
	t, ok := tools.Find(agentTools, tc.Name)
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", tc.Name)
	}
	return t.Execute(ctx, tc.Input)
}

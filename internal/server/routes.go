package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/sumcheck/sumcheck/internal/agent"
	"github.com/sumcheck/sumcheck/internal/config"
	"github.com/sumcheck/sumcheck/internal/handler"
	"github.com/sumcheck/sumcheck/internal/middleware"
	"github.com/sumcheck/sumcheck/internal/security"
	"github.com/sumcheck/sumcheck/internal/service"
	"github.com/sumcheck/sumcheck/internal/tools"
)

func (s *Server) setupRoutes() http.Handler {
	cfg := s.cfg

	// ─── Services ───────────────────────────────────────────────────────────────
	budget := security.NewCellBudget(cfg.MaxCells, cfg.MaxMagnitudes)
	auditLogger := security.NewAuditLogger(cfg.EnableAuditLogging)
	promptVal := security.NewPromptValidator(cfg.MaxPromptLength)

	solverSvc := service.NewSolverService(budget, s.store, auditLogger)
	parser := service.NewPromptParser(cfg.ParserConfidence)

	// ─── AI Agent ────────────────────────────────────────────────────────────────
	var solveAgent *agent.Agent
	if cfg.AnthropicAPIKey != "" {
		solveAgent = agent.New(agentConfig(cfg), tools.All(solverSvc))
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set - agent limited to locally parseable prompts")
	}

	log.Info().
		Bool("rate_limited", cfg.RateLimitPerMinute > 0).
		Bool("postgres", cfg.DatabaseURL != "").
		Bool("agent_enabled", solveAgent != nil).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Int("max_cells", budget.MaxCells()).
		Int("max_magnitudes", cfg.MaxMagnitudes).
		Msg("service configuration")

	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("WARNING: auth enabled but no API keys configured - all API requests will be rejected")
	}

	// ─── Handlers ────────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(solverSvc, solveAgent != nil)
	solveH := handler.NewSolveHandler(solverSvc, cfg.APIKeyHeader)
	recordsH := handler.NewRecordsHandler(solverSvc)
	agentH := handler.NewAgentHandler(
		agent.NewSolveHandler(solveAgent, solverSvc, parser, promptVal, auditLogger),
		cfg.APIKeyHeader,
		cfg.AgentTimeout,
	)

	// ─── Router ──────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	r.Route(cfg.APIPrefix, func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.APIKeyHeader))
		if cfg.EnableAuth {
			r.Use(middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
		}

		r.Post("/solve", solveH.Solve)
		r.Get("/solves", recordsH.List)
		r.Get("/solves/{solve_id}", recordsH.Get)
		r.Post("/agent", agentH.Ask)
	})

	return r
}

func agentConfig(cfg *config.Config) agent.Config {
	return agent.Config{
		Name:          cfg.AgentName,
		Instructions:  cfg.AgentInstructions,
		Model:         cfg.AgentModel,
		MaxTokens:     cfg.AgentMaxTokens,
		MaxIterations: cfg.AgentMaxIter,
		APIKey:        cfg.AnthropicAPIKey,
		BaseURL:       cfg.AnthropicBaseURL,
	}
}

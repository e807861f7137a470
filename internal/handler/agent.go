package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sumcheck/sumcheck/internal/agent"
	"github.com/sumcheck/sumcheck/internal/middleware"
	"github.com/sumcheck/sumcheck/internal/models"
)

// AgentHandler handles POST /api/v1/agent
type AgentHandler struct {
	solveHandler   *agent.SolveHandler
	apiKeyHeader   string
	defaultTimeout int
}

// NewAgentHandler creates the handler; defaultTimeout (seconds) applies when
// the request does not set one.
func NewAgentHandler(solveHandler *agent.SolveHandler, apiKeyHeader string, defaultTimeout int) *AgentHandler {
	return &AgentHandler{solveHandler: solveHandler, apiKeyHeader: apiKeyHeader, defaultTimeout: defaultTimeout}
}

// Ask handles POST /api/v1/agent
func (h *AgentHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteErrorKind(w, http.StatusBadRequest, models.KindInvalidRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Timeout == 0 {
		req.Timeout = h.defaultTimeout
	}
	req.SetDefaults()
	if err := models.Validate(&req); err != nil {
		models.WriteErrorKind(w, http.StatusBadRequest, models.KindInvalidRequest, err.Error())
		return
	}

	apiKey := r.Header.Get(h.apiKeyHeader)
	resp, err := h.solveHandler.Handle(r.Context(), &req, apiKey, middleware.GetRequestID(r.Context()))
	if err != nil {
		if resp != nil && errors.Is(err, agent.ErrPromptRejected) {
			resp.AgentMetadata["error"] = err.Error()
			models.WriteJSON(w, http.StatusBadRequest, resp)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, resp)
}

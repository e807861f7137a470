package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sumcheck/sumcheck/internal/models"
	"github.com/sumcheck/sumcheck/internal/service"
)

// SolveHandler handles direct subset-sum questions
type SolveHandler struct {
	svc          *service.SolverService
	apiKeyHeader string
}

func NewSolveHandler(svc *service.SolverService, apiKeyHeader string) *SolveHandler {
	return &SolveHandler{svc: svc, apiKeyHeader: apiKeyHeader}
}

// Solve handles POST /api/v1/solve
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var req models.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteErrorKind(w, http.StatusBadRequest, models.KindInvalidRequest, "invalid request body: "+err.Error())
		return
	}
	if err := models.Validate(&req); err != nil {
		models.WriteErrorKind(w, http.StatusBadRequest, models.KindInvalidRequest, err.Error())
		return
	}

	out, err := h.svc.Solve(r.Context(), service.SolveInput{
		Magnitudes: req.Magnitudes,
		Target:     *req.Target,
		Source:     service.SourceAPI,
		APIKey:     r.Header.Get(h.apiKeyHeader),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	models.WriteJSON(w, http.StatusOK, models.SolveResponse{
		Status:     "success",
		ID:         out.ID,
		Result:     out.Result,
		N:          out.N,
		Target:     out.Target,
		Cells:      out.Cells,
		DurationMs: float64(out.Duration.Microseconds()) / 1000.0,
		Shared:     out.Shared,
	})
}

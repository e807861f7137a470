package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sumcheck/sumcheck/internal/models"
	"github.com/sumcheck/sumcheck/internal/service"
	"github.com/sumcheck/sumcheck/internal/store"
)

// RecordsHandler exposes persisted solves
type RecordsHandler struct {
	svc *service.SolverService
}

func NewRecordsHandler(svc *service.SolverService) *RecordsHandler {
	return &RecordsHandler{svc: svc}
}

// List handles GET /api/v1/solves
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	var req models.ListRequest
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			models.WriteErrorKind(w, http.StatusBadRequest, models.KindInvalidRequest, "limit must be an integer")
			return
		}
		req.Limit = n
	}
	req.SetDefaults()
	if err := models.Validate(&req); err != nil {
		models.WriteErrorKind(w, http.StatusBadRequest, models.KindInvalidRequest, err.Error())
		return
	}

	recs, err := h.svc.Recent(r.Context(), req.Limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]models.SolveRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toModel(rec))
	}
	models.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"solves": out,
		"count":  len(out),
	})
}

// Get handles GET /api/v1/solves/{solve_id}
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "solve_id")
	rec, err := h.svc.Record(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"solve":  toModel(rec),
	})
}

func toModel(rec *store.SolveRecord) models.SolveRecord {
	return models.SolveRecord{
		ID:         rec.ID,
		Magnitudes: rec.Magnitudes,
		Target:     rec.Target,
		Result:     rec.Result,
		Cells:      rec.Cells,
		DurationMs: float64(rec.Duration.Microseconds()) / 1000.0,
		Source:     rec.Source,
		CreatedAt:  rec.CreatedAt,
	}
}

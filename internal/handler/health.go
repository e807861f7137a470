package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sumcheck/sumcheck/internal/models"
)

const version = "1.0.0"

// HealthChecker is implemented by services that can report connectivity
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles GET /health with optional dependency checks
type HealthHandler struct {
	store        HealthChecker
	agentEnabled bool
}

func NewHealthHandler(store HealthChecker, agentEnabled bool) *HealthHandler {
	return &HealthHandler{store: store, agentEnabled: agentEnabled}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok", "solver": "ok"}
	overallStatus := "healthy"

	// Use a short timeout for health checks so they don't block
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			checks["store"] = "unavailable: " + err.Error()
			overallStatus = "degraded"
		} else {
			checks["store"] = "ok"
		}
	}

	if h.agentEnabled {
		checks["agent"] = "ok"
	} else {
		checks["agent"] = "disabled"
	}

	statusCode := http.StatusOK
	if overallStatus == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, statusCode, models.HealthResponse{
		Status:  overallStatus,
		Version: version,
		Checks:  checks,
	})
}

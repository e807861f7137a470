package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sumcheck/sumcheck/internal/agent"
	"github.com/sumcheck/sumcheck/internal/models"
	"github.com/sumcheck/sumcheck/internal/store"
	"github.com/sumcheck/sumcheck/internal/subsetsum"
)

// statusClientClosedRequest is the nginx convention for a client that went
// away before the response was written.
const statusClientClosedRequest = 499

// writeServiceError maps domain errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, subsetsum.ErrInvalidMagnitude):
		models.WriteErrorKind(w, http.StatusBadRequest, models.KindInvalidMagnitude, err.Error())
	case errors.Is(err, subsetsum.ErrInvalidTarget):
		models.WriteErrorKind(w, http.StatusBadRequest, models.KindInvalidTarget, err.Error())
	case errors.Is(err, subsetsum.ErrResourceExhausted):
		models.WriteErrorKind(w, http.StatusRequestEntityTooLarge, models.KindResourceExhausted, err.Error())
	case errors.Is(err, store.ErrNotFound):
		models.WriteErrorKind(w, http.StatusNotFound, models.KindNotFound, err.Error())
	case errors.Is(err, agent.ErrAgentUnavailable):
		models.WriteErrorKind(w, http.StatusServiceUnavailable, models.KindUnavailable, "agent is not configured and the prompt could not be parsed locally")
	case errors.Is(err, agent.ErrPromptRejected):
		models.WriteErrorKind(w, http.StatusBadRequest, models.KindInvalidRequest, err.Error())
	case errors.Is(err, context.Canceled):
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("request canceled by client")
		models.WriteErrorKind(w, statusClientClosedRequest, models.KindCanceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		models.WriteErrorKind(w, http.StatusGatewayTimeout, models.KindUnavailable, "request timed out")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		models.WriteErrorKind(w, http.StatusInternalServerError, models.KindInternal, "internal server error")
	}
}

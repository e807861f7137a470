package models

import (
	"encoding/json"
	"net/http"
)

// Error kinds reported alongside the HTTP status so clients can branch on
// the failure without parsing messages.
const (
	KindInvalidMagnitude  = "invalid_magnitude"
	KindInvalidTarget     = "invalid_target"
	KindResourceExhausted = "resource_exhausted"
	KindInvalidRequest    = "invalid_request"
	KindNotFound          = "not_found"
	KindUnavailable       = "unavailable"
	KindRateLimited       = "rate_limited"
	KindCanceled          = "canceled"
	KindInternal          = "internal"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func WriteError(w http.ResponseWriter, code int, message string) {
	WriteErrorKind(w, code, "", message)
}

func WriteErrorKind(w http.ResponseWriter, code int, kind, message string) {
	WriteJSON(w, code, ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    code,
		Kind:    kind,
	})
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

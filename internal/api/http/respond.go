package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	// Retryable marks transaction conflicts; the caller may retry the whole
	// use case from scratch.
	Retryable bool `json:"retryable,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrStateConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrBalanceViolation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConcurrencyConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		Retryable: errors.Is(err, domain.ErrConcurrencyConflict),
	})
}

// Package handler contains the HTTP layer: request parsing, response
// shaping, and the mapping from domain errors to status codes. Business
// rules live in the service layer; nothing here touches the store directly.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/promptnexus/promptnexus/internal/apperror"
)

// ErrorResponse is the error shape every endpoint returns, so clients parse
// one format regardless of status code.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// writeJSON sends a JSON response. Headers and status must go out before the
// body; once Encode writes, header changes are silently dropped.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError translates a domain error into a status code and the standard
// error body. The service layer never sees HTTP; this is the only place the
// mapping lives.
//
//	ErrValidation → 400    ErrForbidden → 403    ErrNotFound → 404
//	ErrConflict   → 409    ErrStore     → 502    anything else → 500
//
// ErrStore maps to 502 because the failure is the backing store's, not this
// process's: the request was fine, the upstream dependency wasn't.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		case errors.Is(err, apperror.ErrStore):
			status = http.StatusBadGateway
			errorType = "store_unavailable"
		}

		body := ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
			Field:   appErr.Field,
		}
		if status == http.StatusBadGateway {
			// Store errors carry upstream detail that doesn't belong on the wire.
			body.Message = "the backing store is unavailable, please try again"
		}

		writeJSON(w, status, body)
		return
	}

	// Unknown error: generic 500, no internal detail on the wire.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
	})
}

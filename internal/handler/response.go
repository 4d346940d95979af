// Package handler contains the HTTP layer: request parsing, response
// writing, and the mapping from domain errors to status codes. No business
// rules live here.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/news-channel/internal/apperror"
)

// ErrorResponse is the error body returned by every endpoint: a single
// message field, matching what the frontend already parses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response. Headers and status must be set before the
// body is written — once Encode writes, the headers are on the wire.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeRawJSON sends an already-encoded payload verbatim. Used by the proxy
// endpoints, which pass upstream bodies through untouched.
func writeRawJSON(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		slog.Error("failed to write response payload", slog.String("error", err.Error()))
	}
}

// writeError maps a domain error to its HTTP status and sends the message.
//
// The service layer returns apperror sentinels; this is the single place they
// become status codes. Note the deliberate deviations from REST defaults:
// conflicts are 400 (not 409) and upstream application errors are 400 with
// the upstream's own message — both part of the preserved API contract.
// Anything unrecognized becomes a generic 500; internal details never reach
// the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUpstream):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		}

		writeJSON(w, status, ErrorResponse{Error: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"finor/internal/core"
	applog "finor/internal/log"
	"finor/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode response",
			applog.NewFields().WithError(err).ToSlice()...)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// readJSON decodes a request body, rejecting unknown top-level syntax but
// tolerating unknown fields (the client may be newer than the server).
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeServiceError maps service sentinel errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotConfirmed):
		writeError(w, r, http.StatusPreconditionRequired, err.Error())
	case errors.Is(err, core.ErrEmptyClientName),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidCount),
		errors.Is(err, core.ErrInvalidPeriod),
		errors.Is(err, core.ErrOneTimeCount):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			applog.NewFields().WithError(err).ToSlice()...)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// confirmed reports whether the destructive-action guard query flag is set.
func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"quizhub/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

type idBody struct {
	ID int64 `json:"id"`
}

type affectedBody struct {
	Affected int64 `json:"affected"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes. Unexpected errors get a
// generic body; the cause is logged, never leaked.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		writeJSON(w, status, errorBody{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrPlayerExists),
		errors.Is(err, domain.ErrAttemptStarted),
		errors.Is(err, domain.ErrAttemptSubmitted):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrQuizNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAttemptNotStarted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
}

func writeValidation(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// writeAffected applies the zero-affected convention: 0 means the target row
// does not exist.
func writeAffected(w http.ResponseWriter, affected int64) {
	if affected == 0 {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, affectedBody{Affected: affected})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeValidation(w, "invalid request body")
		return false
	}
	return true
}

// pathID parses the named path segment as an id; writes a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeValidation(w, "invalid "+name)
		return 0, false
	}
	return id, true
}

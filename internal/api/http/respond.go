package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"reelstudio-backend/internal/logger"
	"reelstudio-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	// Step is set for proposal-acceptance sub-step failures.
	Step string `json:"step,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps the service error taxonomy onto HTTP statuses:
// validation 400, not-found 404, conflict 409, partial side effect 500
// with the failed step named for manual reconciliation.
func writeError(w http.ResponseWriter, err error) {
	var pse *service.PartialSideEffectError
	switch {
	case service.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case service.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case service.IsConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &pse):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: pse.Error(), Step: pse.Step})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

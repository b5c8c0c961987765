package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. Storage
// errors are logged server-side and surfaced as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		logger.Error("Unclassified error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	switch derr.Kind {
	case domain.ErrValidation:
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: derr.Message, Fields: derr.Fields})
	case domain.ErrAuthorization:
		writeJSON(w, http.StatusForbidden, errorResponse{Error: derr.Message})
	case domain.ErrNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: derr.Message})
	case domain.ErrConflict:
		writeJSON(w, http.StatusConflict, errorResponse{Error: derr.Message})
	default:
		logger.Error("Storage error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

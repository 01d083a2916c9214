package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"NewsDigest/internal/domain"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

// writeError maps domain errors onto status codes. Internal causes are logged, not echoed.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Article not found")
	default:
		logger.Error("request failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

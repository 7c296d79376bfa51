package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hana/meditation-progress-api/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR [handlers] failed to encode response: %v", err)
	}
}

// validationErrorResponse is the 400 body for rejected payloads: a message
// plus per-field detail.
type validationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// writeServiceError maps service/domain errors onto the HTTP taxonomy:
// validation failures are 400 with field detail, missing aggregates are 404,
// anything else is a 500 the caller may retry.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:  "validation failed",
			Fields: verr.Fields,
		})
		return
	}

	if errors.Is(err, domain.ErrStatsNotFound) || errors.Is(err, domain.ErrPreferencesNotFound) || errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	log.Printf("ERROR [handlers] internal error: %v", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

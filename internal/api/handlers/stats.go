package handlers

import (
	"net/http"

	"github.com/hana/meditation-progress-api/internal/api/middleware"
	"github.com/hana/meditation-progress-api/internal/service"
)

type StatsHandler struct {
	progressService *service.ProgressService
}

func NewStatsHandler(progressService *service.ProgressService) *StatsHandler {
	return &StatsHandler{progressService: progressService}
}

// Get handles GET /stats. Returns 404 until the user's first completed
// session creates the aggregate.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.progressService.GetStats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

package handlers

import (
	"net/http"

	"github.com/hana/meditation-progress-api/internal/api/middleware"
	"github.com/hana/meditation-progress-api/internal/service"
)

type AchievementsHandler struct {
	progressService *service.ProgressService
}

func NewAchievementsHandler(progressService *service.ProgressService) *AchievementsHandler {
	return &AchievementsHandler{progressService: progressService}
}

// List handles GET /achievements, most recently unlocked first.
func (h *AchievementsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	achievements, err := h.progressService.ListAchievements(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, achievements)
}

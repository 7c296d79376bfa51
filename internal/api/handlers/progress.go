package handlers

import (
	"net/http"

	"github.com/hana/meditation-progress-api/internal/api/middleware"
	"github.com/hana/meditation-progress-api/internal/service"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Weekly handles GET /progress/weekly: always exactly 7 buckets for the
// current calendar week, Sunday through Saturday.
func (h *ProgressHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	buckets, err := h.progressService.WeeklyBuckets(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, buckets)
}

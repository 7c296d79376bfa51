package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/hana/meditation-progress-api/internal/api/middleware"
	"github.com/hana/meditation-progress-api/internal/domain"
	"github.com/hana/meditation-progress-api/internal/service"
)

const defaultSessionLimit = 50

type SessionsHandler struct {
	progressService *service.ProgressService
}

func NewSessionsHandler(progressService *service.ProgressService) *SessionsHandler {
	return &SessionsHandler{progressService: progressService}
}

// Create handles POST /sessions. Completed sessions update stats and may
// unlock achievements before the response is written.
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input service.RecordSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.progressService.RecordSession(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// List handles GET /sessions?limit=N, most recent first.
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := defaultSessionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			verr := domain.NewValidationError()
			verr.Add("limit", "must be a positive integer")
			writeServiceError(w, verr)
			return
		}
		limit = parsed
	}

	sessions, err := h.progressService.ListSessions(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

// ListRange handles GET /sessions/range?startDate&endDate, oldest first.
// Both bounds are required; each accepts RFC3339 or a bare YYYY-MM-DD date.
func (h *SessionsHandler) ListRange(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	verr := domain.NewValidationError()
	start, err := parseRangeBound(r.URL.Query().Get("startDate"), false)
	if err != nil {
		verr.Add("startDate", err.Error())
	}
	end, err := parseRangeBound(r.URL.Query().Get("endDate"), true)
	if err != nil {
		verr.Add("endDate", err.Error())
	}
	if verr.HasErrors() {
		writeServiceError(w, verr)
		return
	}

	sessions, err := h.progressService.ListSessionsInRange(r.Context(), userID, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

// parseRangeBound accepts RFC3339 timestamps or bare dates. A bare end date
// extends to the last instant of that day so the range is inclusive.
func parseRangeBound(raw string, isEnd bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errMissingBound
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, errMalformedBound
	}
	if isEnd {
		return domain.EndOfDay(t), nil
	}
	return t, nil
}

var (
	errMissingBound   = boundError("is required")
	errMalformedBound = boundError("must be an RFC3339 timestamp or YYYY-MM-DD date")
)

type boundError string

func (e boundError) Error() string { return string(e) }

package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
	"github.com/hana/meditation-progress-api/internal/repository"
	"gorm.io/datatypes"
)

// ProgressUpdate is pushed to a user's connected clients after a completed
// session changes their stats.
type ProgressUpdate struct {
	Stats           *domain.UserStats     `json:"stats"`
	NewAchievements []*domain.Achievement `json:"newAchievements"`
}

// ProgressNotifier delivers ProgressUpdates to whoever is listening. The
// websocket hub implements it; a nil notifier disables pushes.
type ProgressNotifier interface {
	NotifyProgress(userID uuid.UUID, update ProgressUpdate)
}

type ProgressService struct {
	sessionRepo     repository.PracticeSessionRepository
	statsRepo       repository.UserStatsRepository
	achievementRepo repository.AchievementRepository
	prefsRepo       repository.PreferencesRepository
	clock           domain.Clock
	notifier        ProgressNotifier

	// userLocks serializes the stats read-modify-write per user. Two
	// concurrent completions for the same user would otherwise both read
	// stale counters and lose an update. Cross-user writes never contend.
	lockMu    sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

func NewProgressService(
	sessionRepo repository.PracticeSessionRepository,
	statsRepo repository.UserStatsRepository,
	achievementRepo repository.AchievementRepository,
	prefsRepo repository.PreferencesRepository,
	clock domain.Clock,
) *ProgressService {
	return &ProgressService{
		sessionRepo:     sessionRepo,
		statsRepo:       statsRepo,
		achievementRepo: achievementRepo,
		prefsRepo:       prefsRepo,
		clock:           clock,
		userLocks:       make(map[uuid.UUID]*sync.Mutex),
	}
}

// SetNotifier attaches the live-progress notifier. Called once during wiring,
// before the server accepts traffic.
func (s *ProgressService) SetNotifier(n ProgressNotifier) {
	s.notifier = n
}

type RecordSessionInput struct {
	DurationSeconds int      `json:"durationSeconds"`
	SessionType     string   `json:"sessionType"`
	SoundsUsed      []string `json:"soundsUsed"`
	WasCompleted    bool     `json:"wasCompleted"`
}

func (input RecordSessionInput) validate() error {
	verr := domain.NewValidationError()
	if input.DurationSeconds <= 0 {
		verr.Add("durationSeconds", "must be a positive number of seconds")
	}
	if strings.TrimSpace(input.SessionType) == "" {
		verr.Add("sessionType", "must not be empty")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// RecordSession appends a practice session and, if it was completed, folds it
// into the user's stats and evaluates achievements. Validation happens before
// anything is stored: a rejected session never touches stats.
func (s *ProgressService) RecordSession(ctx context.Context, userID uuid.UUID, input RecordSessionInput) (*domain.PracticeSession, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	sounds := input.SoundsUsed
	if sounds == nil {
		sounds = []string{}
	}
	soundsJSON, err := json.Marshal(sounds)
	if err != nil {
		return nil, err
	}

	session := &domain.PracticeSession{
		ID:              uuid.New(),
		UserID:          userID,
		DurationSeconds: input.DurationSeconds,
		SessionType:     strings.TrimSpace(input.SessionType),
		SoundsUsed:      datatypes.JSON(soundsJSON),
		WasCompleted:    input.WasCompleted,
		CompletedAt:     s.clock.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	if session.WasCompleted {
		if err := s.applyCompletedSession(ctx, userID, session); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// applyCompletedSession runs the aggregation steps as one unit under the
// user's lock: bump counters, recompute the streak, persist, then unlock any
// newly earned achievements. Stats are written with a single Upsert of a
// fully built value, so readers see the old or new record, never a torn one,
// and a storage failure before the write leaves stats unchanged.
func (s *ProgressService) applyCompletedSession(ctx context.Context, userID uuid.UUID, session *domain.PracticeSession) error {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	stats, err := s.statsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err != domain.ErrStatsNotFound {
			return err
		}
		stats = domain.NewUserStats(userID)
	}

	updated := *stats
	updated.TotalMinutes += session.Minutes()
	updated.TotalSessions++
	completedAt := session.CompletedAt
	updated.LastSessionDate = &completedAt

	completed, err := s.sessionRepo.ListCompletedByUser(ctx, userID)
	if err != nil {
		return err
	}
	updated.CurrentStreak = domain.ComputeStreak(completed, s.clock.Now())
	if updated.CurrentStreak > updated.LongestStreak {
		updated.LongestStreak = updated.CurrentStreak
	}
	updated.UpdatedAt = s.clock.Now()

	if err := s.statsRepo.Upsert(ctx, &updated); err != nil {
		return err
	}

	unlocked, err := s.evaluateAchievements(ctx, userID, &updated)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyProgress(userID, ProgressUpdate{
			Stats:           &updated,
			NewAchievements: unlocked,
		})
	}

	return nil
}

// evaluateAchievements walks the rule table in order and creates an unlock
// record for every rule that holds and has not been unlocked before.
// Re-running with unchanged stats creates nothing.
func (s *ProgressService) evaluateAchievements(ctx context.Context, userID uuid.UUID, stats *domain.UserStats) ([]*domain.Achievement, error) {
	var unlocked []*domain.Achievement

	for _, rule := range domain.AchievementRules {
		if !rule.Met(stats) {
			continue
		}

		exists, err := s.achievementRepo.ExistsByUserAndType(ctx, userID, rule.Type)
		if err != nil {
			return unlocked, err
		}
		if exists {
			continue
		}

		achievement := &domain.Achievement{
			ID:         uuid.New(),
			UserID:     userID,
			Type:       rule.Type,
			Value:      rule.Value,
			UnlockedAt: s.clock.Now(),
		}
		if err := s.achievementRepo.Create(ctx, achievement); err != nil {
			return unlocked, err
		}
		unlocked = append(unlocked, achievement)
	}

	return unlocked, nil
}

// StatsResult pairs the aggregate with the preferences the tracker page
// renders alongside it.
type StatsResult struct {
	Stats       *domain.UserStats       `json:"stats"`
	Preferences *domain.UserPreferences `json:"preferences"`
}

// GetStats returns the user's aggregate and preferences. Before the first
// completed session there is no aggregate and domain.ErrStatsNotFound is
// returned; absent preferences fall back to defaults.
func (s *ProgressService) GetStats(ctx context.Context, userID uuid.UUID) (*StatsResult, error) {
	stats, err := s.statsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err != domain.ErrPreferencesNotFound {
			return nil, err
		}
		prefs = domain.DefaultPreferences(userID)
	}

	return &StatsResult{Stats: stats, Preferences: prefs}, nil
}

// ListSessions returns up to limit sessions, most recent first.
func (s *ProgressService) ListSessions(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PracticeSession, error) {
	return s.sessionRepo.ListByUser(ctx, userID, limit)
}

// ListSessionsInRange returns sessions with completedAt in [start, end],
// oldest first.
func (s *ProgressService) ListSessionsInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.PracticeSession, error) {
	return s.sessionRepo.ListByUserInRange(ctx, userID, start, end)
}

// ListAchievements returns the user's unlocks, most recent first.
func (s *ProgressService) ListAchievements(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error) {
	return s.achievementRepo.ListByUser(ctx, userID)
}

// WeeklyBuckets returns the Sunday-to-Saturday report for the calendar week
// containing "today". Pure over stored sessions: rerunning it never consumes
// or changes anything.
func (s *ProgressService) WeeklyBuckets(ctx context.Context, userID uuid.UUID) ([]domain.DayBucket, error) {
	now := s.clock.Now()
	start := domain.StartOfWeek(now)
	end := domain.EndOfDay(start.AddDate(0, 0, 6))

	sessions, err := s.sessionRepo.ListByUserInRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return domain.WeeklyBuckets(sessions, now), nil
}

func (s *ProgressService) lockFor(userID uuid.UUID) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

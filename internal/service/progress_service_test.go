package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
	"github.com/hana/meditation-progress-api/internal/repository"
	"github.com/hana/meditation-progress-api/internal/repository/memory"
	"github.com/hana/meditation-progress-api/internal/service"
	"github.com/hana/meditation-progress-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wednesday mid-afternoon
var anchor = time.Date(2024, time.March, 13, 15, 0, 0, 0, time.UTC)

func newProgressService(t *testing.T) (*service.ProgressService, *repository.Repositories, *testutil.FakeClock) {
	t.Helper()

	repos := memory.NewRepositories()
	clock := testutil.NewFakeClock(anchor)
	svc := service.NewProgressService(repos.PracticeSession, repos.UserStats, repos.Achievement, repos.Preferences, clock)
	return svc, repos, clock
}

func completedInput(seconds int) service.RecordSessionInput {
	return service.RecordSessionInput{
		DurationSeconds: seconds,
		SessionType:     "timer",
		SoundsUsed:      []string{"rain"},
		WasCompleted:    true,
	}
}

func TestRecordSession_FirstCompletedSession(t *testing.T) {
	svc, repos, _ := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	session, err := svc.RecordSession(ctx, userID, completedInput(600))
	require.NoError(t, err)
	assert.Equal(t, 600, session.DurationSeconds)
	assert.Equal(t, anchor, session.CompletedAt)

	stats, err := repos.UserStats.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalMinutes)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.LongestStreak)
	require.NotNil(t, stats.LastSessionDate)
	assert.Equal(t, anchor, *stats.LastSessionDate)

	achievements, err := repos.Achievement.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, achievements, 1)
	assert.Equal(t, domain.AchievementFirstSession, achievements[0].Type)
	assert.Equal(t, 1, achievements[0].Value)
	assert.Equal(t, anchor, achievements[0].UnlockedAt)
}

func TestRecordSession_Validation(t *testing.T) {
	svc, repos, _ := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name       string
		input      service.RecordSessionInput
		wantFields []string
	}{
		{
			name: "negative duration",
			input: service.RecordSessionInput{
				DurationSeconds: -5,
				SessionType:     "timer",
				WasCompleted:    true,
			},
			wantFields: []string{"durationSeconds"},
		},
		{
			name: "zero duration",
			input: service.RecordSessionInput{
				DurationSeconds: 0,
				SessionType:     "timer",
				WasCompleted:    true,
			},
			wantFields: []string{"durationSeconds"},
		},
		{
			name: "blank session type",
			input: service.RecordSessionInput{
				DurationSeconds: 600,
				SessionType:     "   ",
				WasCompleted:    true,
			},
			wantFields: []string{"sessionType"},
		},
		{
			name: "everything wrong at once",
			input: service.RecordSessionInput{
				DurationSeconds: -1,
				SessionType:     "",
				WasCompleted:    true,
			},
			wantFields: []string{"durationSeconds", "sessionType"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordSession(ctx, userID, tt.input)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Fields, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, verr.Fields, field)
			}
		})
	}

	// A rejected session leaves no trace
	sessions, err := repos.PracticeSession.ListByUser(ctx, userID, 0)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = repos.UserStats.GetByUserID(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrStatsNotFound)
}

func TestRecordSession_IncompleteSessionIsStoredButInert(t *testing.T) {
	svc, repos, _ := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	input := completedInput(600)
	input.WasCompleted = false

	_, err := svc.RecordSession(ctx, userID, input)
	require.NoError(t, err)

	sessions, err := repos.PracticeSession.ListByUser(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].WasCompleted)

	_, err = repos.UserStats.GetByUserID(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrStatsNotFound)

	achievements, err := repos.Achievement.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, achievements)
}

func TestRecordSession_SubMinuteSessionCountsButAddsNoMinutes(t *testing.T) {
	svc, repos, _ := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.RecordSession(ctx, userID, completedInput(59))
	require.NoError(t, err)

	stats, err := repos.UserStats.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalMinutes)
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestRecordSession_SevenDayStreak(t *testing.T) {
	svc, repos, clock := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	for day := 0; day < 7; day++ {
		_, err := svc.RecordSession(ctx, userID, completedInput(600))
		require.NoError(t, err)
		if day < 6 {
			clock.Advance(24 * time.Hour)
		}
	}

	stats, err := repos.UserStats.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.CurrentStreak)
	assert.Equal(t, 7, stats.LongestStreak)
	assert.Equal(t, 70, stats.TotalMinutes)
	assert.Equal(t, 7, stats.TotalSessions)

	achievements, err := repos.Achievement.ListByUser(ctx, userID)
	require.NoError(t, err)

	types := make([]domain.AchievementType, 0, len(achievements))
	for _, a := range achievements {
		types = append(types, a.Type)
	}
	assert.ElementsMatch(t, []domain.AchievementType{
		domain.AchievementFirstSession,
		domain.Achievement7DayStreak,
	}, types)
	assert.NotContains(t, types, domain.Achievement100Minutes)
}

func TestRecordSession_StreakBreaksAfterGap(t *testing.T) {
	svc, repos, clock := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	for day := 0; day < 3; day++ {
		_, err := svc.RecordSession(ctx, userID, completedInput(600))
		require.NoError(t, err)
		clock.Advance(24 * time.Hour)
	}

	// Skip a day, then practice again
	clock.Advance(24 * time.Hour)
	_, err := svc.RecordSession(ctx, userID, completedInput(600))
	require.NoError(t, err)

	stats, err := repos.UserStats.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)
}

func TestRecordSession_MultipleSessionsSameDayCountStreakOnce(t *testing.T) {
	svc, repos, clock := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.RecordSession(ctx, userID, completedInput(600))
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)
	_, err = svc.RecordSession(ctx, userID, completedInput(600))
	require.NoError(t, err)

	stats, err := repos.UserStats.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 20, stats.TotalMinutes)
}

func TestRecordSession_MinuteAchievementsUnlockOnce(t *testing.T) {
	svc, repos, _ := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Two 50-minute sessions cross the 100-minute line on the second
	for i := 0; i < 2; i++ {
		_, err := svc.RecordSession(ctx, userID, completedInput(3000))
		require.NoError(t, err)
	}

	achievements, err := repos.Achievement.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, achievements, 2)

	// Further sessions keep the threshold satisfied but create no duplicates
	_, err = svc.RecordSession(ctx, userID, completedInput(3000))
	require.NoError(t, err)

	achievements, err = repos.Achievement.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, achievements, 2)

	exists, err := repos.Achievement.ExistsByUserAndType(ctx, userID, domain.Achievement100Minutes)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRecordSession_ConcurrentCompletionsLoseNoUpdates(t *testing.T) {
	svc, repos, _ := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	const workers = 20

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordSession(ctx, userID, completedInput(60))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stats, err := repos.UserStats.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, workers, stats.TotalSessions)
	assert.Equal(t, workers, stats.TotalMinutes)

	achievements, err := repos.Achievement.ListByUser(ctx, userID)
	require.NoError(t, err)
	// first_session exactly once despite the race
	count := 0
	for _, a := range achievements {
		if a.Type == domain.AchievementFirstSession {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

type captureNotifier struct {
	mu      sync.Mutex
	updates []service.ProgressUpdate
}

func (n *captureNotifier) NotifyProgress(userID uuid.UUID, update service.ProgressUpdate) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, update)
}

func TestRecordSession_NotifiesAfterCompletedSession(t *testing.T) {
	svc, _, _ := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	notifier := &captureNotifier{}
	svc.SetNotifier(notifier)

	_, err := svc.RecordSession(ctx, userID, completedInput(600))
	require.NoError(t, err)

	input := completedInput(600)
	input.WasCompleted = false
	_, err = svc.RecordSession(ctx, userID, input)
	require.NoError(t, err)

	require.Len(t, notifier.updates, 1, "only the completed session should notify")
	update := notifier.updates[0]
	assert.Equal(t, 10, update.Stats.TotalMinutes)
	require.Len(t, update.NewAchievements, 1)
	assert.Equal(t, domain.AchievementFirstSession, update.NewAchievements[0].Type)
}

func TestGetStats(t *testing.T) {
	svc, _, _ := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	// No aggregate exists before the first completed session
	_, err := svc.GetStats(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrStatsNotFound)

	_, err = svc.RecordSession(ctx, userID, completedInput(600))
	require.NoError(t, err)

	result, err := svc.GetStats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Stats.TotalMinutes)

	// Preferences fall back to defaults when never saved
	require.NotNil(t, result.Preferences)
	assert.Equal(t, 10, result.Preferences.DailyGoalMinutes)
}

func TestListSessions_MostRecentFirstWithLimit(t *testing.T) {
	svc, _, clock := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	var last *domain.PracticeSession
	for i := 0; i < 5; i++ {
		session, err := svc.RecordSession(ctx, userID, completedInput(600))
		require.NoError(t, err)
		last = session
		clock.Advance(time.Hour)
	}

	sessions, err := svc.ListSessions(ctx, userID, 3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, last.ID, sessions[0].ID)
	assert.True(t, sessions[0].CompletedAt.After(sessions[1].CompletedAt))
}

func TestWeeklyBuckets_ServiceWindow(t *testing.T) {
	svc, repos, _ := newProgressService(t)
	ctx := context.Background()
	userID := uuid.New()

	// Saturday before the current week, must not appear
	testutil.NewSessionBuilder(userID).
		WithDuration(1800).
		CompletedAt(anchor.AddDate(0, 0, -4)).
		Build(t, repos.PracticeSession)

	// Sunday and Wednesday of the current week
	testutil.NewSessionBuilder(userID).
		WithDuration(900).
		CompletedAt(anchor.AddDate(0, 0, -3)).
		Build(t, repos.PracticeSession)

	_, err := svc.RecordSession(ctx, userID, completedInput(600))
	require.NoError(t, err)

	buckets, err := svc.WeeklyBuckets(ctx, userID)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	assert.Equal(t, "Sunday", buckets[0].Day)
	assert.Equal(t, 15, buckets[0].Minutes)
	assert.Equal(t, 1, buckets[0].Sessions)

	assert.Equal(t, "Wednesday", buckets[3].Day)
	assert.Equal(t, 10, buckets[3].Minutes)
	assert.Equal(t, 1, buckets[3].Sessions)

	total := 0
	for _, b := range buckets {
		total += b.Minutes
	}
	assert.Equal(t, 25, total, "the pre-week session must stay out of the report")
}

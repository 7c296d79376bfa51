package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/repository/postgres"
	"github.com/hana/meditation-progress-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)

func TestPracticeSessionRepository_CreateAndList(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPracticeSessionRepository(testDB.DB)
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	for i := 0; i < 3; i++ {
		testutil.NewSessionBuilder(userID).
			CompletedAt(base.Add(time.Duration(i)*time.Hour)).
			Build(t, repo)
	}
	testutil.NewSessionBuilder(otherID).CompletedAt(base).Build(t, repo)

	sessions, err := repo.ListByUser(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	// Most recent first
	for i := 1; i < len(sessions); i++ {
		assert.True(t, sessions[i-1].CompletedAt.After(sessions[i].CompletedAt))
	}

	limited, err := repo.ListByUser(ctx, userID, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, sessions[0].ID, limited[0].ID)
}

func TestPracticeSessionRepository_Range(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPracticeSessionRepository(testDB.DB)
	ctx := context.Background()
	userID := uuid.New()

	inside := testutil.NewSessionBuilder(userID).CompletedAt(base.Add(12*time.Hour)).Build(t, repo)
	testutil.NewSessionBuilder(userID).CompletedAt(base.Add(-time.Hour)).Build(t, repo)
	testutil.NewSessionBuilder(userID).CompletedAt(base.Add(48*time.Hour)).Build(t, repo)

	sessions, err := repo.ListByUserInRange(ctx, userID, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, inside.ID, sessions[0].ID)
}

func TestPracticeSessionRepository_ListCompleted(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPracticeSessionRepository(testDB.DB)
	ctx := context.Background()
	userID := uuid.New()

	completed := testutil.NewSessionBuilder(userID).CompletedAt(base).Build(t, repo)
	testutil.NewSessionBuilder(userID).Incomplete().CompletedAt(base.Add(time.Hour)).Build(t, repo)

	sessions, err := repo.ListCompletedByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, completed.ID, sessions[0].ID)
	assert.True(t, sessions[0].WasCompleted)
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
}

type AuthSessionRepository interface {
	Create(ctx context.Context, session *domain.AuthSession) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// PracticeSessionRepository is append-only: sessions are never updated or
// deleted once created.
type PracticeSessionRepository interface {
	Create(ctx context.Context, session *domain.PracticeSession) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PracticeSession, error)
	ListByUserInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.PracticeSession, error)
	ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PracticeSession, error)
}

type UserStatsRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)
	Upsert(ctx context.Context, stats *domain.UserStats) error
}

type AchievementRepository interface {
	Create(ctx context.Context, achievement *domain.Achievement) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error)
	ExistsByUserAndType(ctx context.Context, userID uuid.UUID, achievementType domain.AchievementType) (bool, error)
}

type PreferencesRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)
	Upsert(ctx context.Context, prefs *domain.UserPreferences) error
}

type Repositories struct {
	User            UserRepository
	AuthSession     AuthSessionRepository
	PracticeSession PracticeSessionRepository
	UserStats       UserStatsRepository
	Achievement     AchievementRepository
	Preferences     PreferencesRepository
}

package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
	"gorm.io/gorm"
)

type practiceSessionRepository struct {
	db *gorm.DB
}

func NewPracticeSessionRepository(db *gorm.DB) *practiceSessionRepository {
	return &practiceSessionRepository{db: db}
}

func (r *practiceSessionRepository) Create(ctx context.Context, session *domain.PracticeSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *practiceSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PracticeSession, error) {
	var sessions []*domain.PracticeSession
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *practiceSessionRepository) ListByUserInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.PracticeSession, error) {
	var sessions []*domain.PracticeSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed_at >= ? AND completed_at <= ?", userID, start, end).
		Order("completed_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *practiceSessionRepository) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PracticeSession, error) {
	var sessions []*domain.PracticeSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND was_completed = ?", userID, true).
		Order("completed_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

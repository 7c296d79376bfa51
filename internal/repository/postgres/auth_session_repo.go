package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
	"gorm.io/gorm"
)

type authSessionRepository struct {
	db *gorm.DB
}

func NewAuthSessionRepository(db *gorm.DB) *authSessionRepository {
	return &authSessionRepository{db: db}
}

func (r *authSessionRepository) Create(ctx context.Context, session *domain.AuthSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *authSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.AuthSession{}, "user_id = ?", userID).Error
}

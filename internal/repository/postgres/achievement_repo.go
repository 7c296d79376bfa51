package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
	"gorm.io/gorm"
)

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *achievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *domain.Achievement) error {
	return r.db.WithContext(ctx).Create(achievement).Error
}

func (r *achievementRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error) {
	var achievements []*domain.Achievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *achievementRepository) ExistsByUserAndType(ctx context.Context, userID uuid.UUID, achievementType domain.AchievementType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Achievement{}).
		Where("user_id = ? AND achievement_type = ?", userID, achievementType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userStatsRepository struct {
	db *gorm.DB
}

func NewUserStatsRepository(db *gorm.DB) *userStatsRepository {
	return &userStatsRepository{db: db}
}

func (r *userStatsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	var stats domain.UserStats
	err := r.db.WithContext(ctx).First(&stats, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStatsNotFound
		}
		return nil, err
	}
	return &stats, nil
}

func (r *userStatsRepository) Upsert(ctx context.Context, stats *domain.UserStats) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(stats).Error
}

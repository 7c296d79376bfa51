package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
)

type userStatsRepository struct {
	mu    sync.RWMutex
	stats map[uuid.UUID]*domain.UserStats
}

func NewUserStatsRepository() *userStatsRepository {
	return &userStatsRepository{stats: make(map[uuid.UUID]*domain.UserStats)}
}

func (r *userStatsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, ok := r.stats[userID]
	if !ok {
		return nil, domain.ErrStatsNotFound
	}
	copied := *stats
	return &copied, nil
}

func (r *userStatsRepository) Upsert(ctx context.Context, stats *domain.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *stats
	r.stats[stats.UserID] = &copied
	return nil
}

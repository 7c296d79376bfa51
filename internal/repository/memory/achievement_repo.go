package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
)

type achievementRepository struct {
	mu           sync.RWMutex
	achievements map[uuid.UUID][]*domain.Achievement
}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{achievements: make(map[uuid.UUID][]*domain.Achievement)}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *domain.Achievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *achievement
	r.achievements[achievement.UserID] = append(r.achievements[achievement.UserID], &copied)
	return nil
}

func (r *achievementRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Achievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Achievement, 0, len(r.achievements[userID]))
	for _, a := range r.achievements[userID] {
		copied := *a
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UnlockedAt.After(result[j].UnlockedAt)
	})
	return result, nil
}

func (r *achievementRepository) ExistsByUserAndType(ctx context.Context, userID uuid.UUID, achievementType domain.AchievementType) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.achievements[userID] {
		if a.Type == achievementType {
			return true, nil
		}
	}
	return false, nil
}

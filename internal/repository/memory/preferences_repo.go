package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
)

type preferencesRepository struct {
	mu    sync.RWMutex
	prefs map[uuid.UUID]*domain.UserPreferences
}

func NewPreferencesRepository() *preferencesRepository {
	return &preferencesRepository{prefs: make(map[uuid.UUID]*domain.UserPreferences)}
}

func (r *preferencesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefs, ok := r.prefs[userID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	copied := *prefs
	return &copied, nil
}

func (r *preferencesRepository) Upsert(ctx context.Context, prefs *domain.UserPreferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *prefs
	r.prefs[prefs.UserID] = &copied
	return nil
}

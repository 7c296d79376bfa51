package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
)

var errDuplicateDisplayName = errors.New("display name already taken")

type userRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func NewUserRepository() *userRepository {
	return &userRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.DisplayName == user.DisplayName {
			return errDuplicateDisplayName
		}
	}

	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *userRepository) GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.DisplayName == displayName {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
)

type authSessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.AuthSession
}

func NewAuthSessionRepository() *authSessionRepository {
	return &authSessionRepository{sessions: make(map[uuid.UUID]*domain.AuthSession)}
}

func (r *authSessionRepository) Create(ctx context.Context, session *domain.AuthSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *authSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hana/meditation-progress-api/internal/domain"
)

type practiceSessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]*domain.PracticeSession
}

func NewPracticeSessionRepository() *practiceSessionRepository {
	return &practiceSessionRepository{sessions: make(map[uuid.UUID][]*domain.PracticeSession)}
}

func (r *practiceSessionRepository) Create(ctx context.Context, session *domain.PracticeSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions[session.UserID] = append(r.sessions[session.UserID], &copied)
	return nil
}

func (r *practiceSessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.PracticeSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.copyOf(userID, func(s *domain.PracticeSession) bool { return true })
	sort.Slice(result, func(i, j int) bool {
		return result[i].CompletedAt.After(result[j].CompletedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *practiceSessionRepository) ListByUserInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.PracticeSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.copyOf(userID, func(s *domain.PracticeSession) bool {
		return !s.CompletedAt.Before(start) && !s.CompletedAt.After(end)
	})
	sort.Slice(result, func(i, j int) bool {
		return result[i].CompletedAt.Before(result[j].CompletedAt)
	})
	return result, nil
}

func (r *practiceSessionRepository) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PracticeSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.copyOf(userID, func(s *domain.PracticeSession) bool { return s.WasCompleted })
	sort.Slice(result, func(i, j int) bool {
		return result[i].CompletedAt.After(result[j].CompletedAt)
	})
	return result, nil
}

// copyOf returns copies so callers can never mutate stored records.
func (r *practiceSessionRepository) copyOf(userID uuid.UUID, keep func(*domain.PracticeSession) bool) []*domain.PracticeSession {
	result := make([]*domain.PracticeSession, 0, len(r.sessions[userID]))
	for _, s := range r.sessions[userID] {
		if keep(s) {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result
}

// Package memory implements the repository interfaces with in-process maps.
// It is the reference store for the progress engine and the backend unit and
// handler tests run against; the postgres package provides the durable
// alternative behind the same interfaces.
package memory

import "github.com/hana/meditation-progress-api/internal/repository"

func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		User:            NewUserRepository(),
		AuthSession:     NewAuthSessionRepository(),
		PracticeSession: NewPracticeSessionRepository(),
		UserStats:       NewUserStatsRepository(),
		Achievement:     NewAchievementRepository(),
		Preferences:     NewPreferencesRepository(),
	}
}

package service

import (
	"github.com/hana/meditation-progress-api/internal/config"
	"github.com/hana/meditation-progress-api/internal/domain"
	"github.com/hana/meditation-progress-api/internal/repository"
)

type Services struct {
	Auth        *AuthService
	Progress    *ProgressService
	Preferences *PreferencesService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, clock domain.Clock) *Services {
	return &Services{
		Auth:        NewAuthService(repos.User, repos.AuthSession, cfg),
		Progress:    NewProgressService(repos.PracticeSession, repos.UserStats, repos.Achievement, repos.Preferences, clock),
		Preferences: NewPreferencesService(repos.Preferences),
	}
}

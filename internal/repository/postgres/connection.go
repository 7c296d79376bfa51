package postgres

import (
	"github.com/hana/meditation-progress-api/internal/domain"
	"github.com/hana/meditation-progress-api/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.AuthSession{},
		&domain.PracticeSession{},
		&domain.UserStats{},
		&domain.Achievement{},
		&domain.UserPreferences{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:            NewUserRepository(db),
		AuthSession:     NewAuthSessionRepository(db),
		PracticeSession: NewPracticeSessionRepository(db),
		UserStats:       NewUserStatsRepository(db),
		Achievement:     NewAchievementRepository(db),
		Preferences:     NewPreferencesRepository(db),
	}
}

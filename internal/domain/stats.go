package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserStats is the running aggregate over a user's completed sessions.
// Exactly one row per user, created lazily on the first completed session.
// TotalMinutes, TotalSessions and LongestStreak never decrease.
type UserStats struct {
	UserID          uuid.UUID  `json:"userId" gorm:"type:uuid;primary_key"`
	TotalMinutes    int        `json:"totalMinutes" gorm:"not null;default:0"`
	TotalSessions   int        `json:"totalSessions" gorm:"not null;default:0"`
	CurrentStreak   int        `json:"currentStreak" gorm:"not null;default:0"`
	LongestStreak   int        `json:"longestStreak" gorm:"not null;default:0"`
	LastSessionDate *time.Time `json:"lastSessionDate"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// NewUserStats returns the zero-valued aggregate for a user.
func NewUserStats(userID uuid.UUID) *UserStats {
	return &UserStats{UserID: userID}
}

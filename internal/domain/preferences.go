package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserPreferences holds per-user tracker configuration. The progress engine
// only reads these (the weekly report shows progress against DailyGoalMinutes);
// they are edited through their own endpoint, never on the session path.
type UserPreferences struct {
	UserID              uuid.UUID `json:"userId" gorm:"type:uuid;primary_key"`
	DailyGoalMinutes    int       `json:"dailyGoalMinutes" gorm:"not null;default:10"`
	IntervalBellEnabled bool      `json:"intervalBellEnabled" gorm:"not null;default:false"`
	IntervalBellMinutes int       `json:"intervalBellMinutes" gorm:"not null;default:5"`
	DefaultSound        string    `json:"defaultSound" gorm:"not null;default:''"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// DefaultPreferences returns the preferences used when a user has never
// saved any.
func DefaultPreferences(userID uuid.UUID) *UserPreferences {
	return &UserPreferences{
		UserID:              userID,
		DailyGoalMinutes:    10,
		IntervalBellEnabled: false,
		IntervalBellMinutes: 5,
	}
}

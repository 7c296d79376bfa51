package domain

import (
	"time"

	"github.com/google/uuid"
)

type AchievementType string

const (
	AchievementFirstSession AchievementType = "first_session"
	Achievement7DayStreak   AchievementType = "7_day_streak"
	Achievement30DayStreak  AchievementType = "30_day_streak"
	Achievement100Minutes   AchievementType = "100_minutes"
	Achievement500Minutes   AchievementType = "500_minutes"
)

// Achievement is an unlock record. At most one exists per
// (UserID, Type) pair; unlocking is idempotent.
type Achievement struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID       `json:"userId" gorm:"type:uuid;index:idx_user_achievement,unique;not null"`
	Type       AchievementType `json:"achievementType" gorm:"column:achievement_type;index:idx_user_achievement,unique;not null"`
	Value      int             `json:"value" gorm:"not null"`
	UnlockedAt time.Time       `json:"unlockedAt" gorm:"not null"`
}

// AchievementRule pairs an achievement type with the stats predicate that
// unlocks it and the threshold value recorded on the unlock.
type AchievementRule struct {
	Type  AchievementType
	Value int
	Met   func(stats *UserStats) bool
}

// AchievementRules is the full unlock table, evaluated in order after every
// completed session. Adding a new achievement means adding a row here.
var AchievementRules = []AchievementRule{
	{AchievementFirstSession, 1, func(s *UserStats) bool { return s.TotalSessions == 1 }},
	{Achievement7DayStreak, 7, func(s *UserStats) bool { return s.CurrentStreak >= 7 }},
	{Achievement30DayStreak, 30, func(s *UserStats) bool { return s.CurrentStreak >= 30 }},
	{Achievement100Minutes, 100, func(s *UserStats) bool { return s.TotalMinutes >= 100 }},
	{Achievement500Minutes, 500, func(s *UserStats) bool { return s.TotalMinutes >= 500 }},
}

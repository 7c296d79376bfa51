package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PracticeSession is one attempt at a timed practice. Sessions are
// append-only: once recorded they are never mutated or deleted, so every
// aggregate can be rebuilt by replaying them.
type PracticeSession struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID          uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	DurationSeconds int            `json:"durationSeconds" gorm:"not null"`
	SessionType     string         `json:"sessionType" gorm:"not null"`
	SoundsUsed      datatypes.JSON `json:"soundsUsed" gorm:"type:jsonb;default:'[]'"`
	WasCompleted    bool           `json:"wasCompleted" gorm:"not null;default:false"`
	CompletedAt     time.Time      `json:"completedAt" gorm:"index;not null"`
}

// Minutes returns the whole minutes this session contributes to stats.
func (s *PracticeSession) Minutes() int {
	return s.DurationSeconds / 60
}

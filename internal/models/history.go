package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayHistoryEntry is one step in the in-memory play log: the item that
// played, when, and optionally for how long. ID is the durable handle
// assigned by the history repository when the record was written.
type PlayHistoryEntry struct {
	ID          uuid.UUID  `json:"id"`
	Item        Item       `json:"item"`
	PlayedAt    time.Time  `json:"played_at"`
	PlayedFor   *int       `json:"played_for,omitempty"` // seconds
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HistoryRecord is the durable row behind a PlayHistoryEntry.
// Rows are append-only: nothing updates them in place, and they are only
// removed by a bulk history clear.
type HistoryRecord struct {
	ID          uuid.UUID  `json:"id" gorm:"type:text;primaryKey;column:id"`
	ClipKey     string     `json:"clip_key" gorm:"type:text;not null;index;column:clip_key" validate:"required"`
	PlayedAt    time.Time  `json:"played_at" gorm:"type:datetime;not null;column:played_at"`
	PlayedFor   *int       `json:"played_for,omitempty" gorm:"type:integer;column:played_for"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:datetime;column:completed_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"type:datetime;default:CURRENT_TIMESTAMP;column:created_at"`
}

// TableName overrides GORM's default pluralization
func (HistoryRecord) TableName() string {
	return "play_history"
}

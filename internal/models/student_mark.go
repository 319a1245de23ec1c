package models

import (
	"time"

	"gorm.io/datatypes"
)

// StudentMark stores one student's validated academic record. APS and average
// are promoted to columns for querying; the full per-subject breakdown lives
// in the JSON payload.
type StudentMark struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	ProfileID *string           `gorm:"size:36" json:"profile_id"`
	APSMark   *int              `json:"aps_mark"`
	Average   *float64          `json:"average"`
	Subjects  datatypes.JSONMap `json:"subjects"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

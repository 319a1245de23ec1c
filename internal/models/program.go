package models

import "time"

// Program is one catalog entry a student can be matched against.
type Program struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Type            string    `gorm:"size:16;not null;index" json:"type"`
	Qualification   string    `gorm:"size:255;not null" json:"qualification"`
	InstitutionName string    `gorm:"size:255;not null" json:"institution_name"`
	RequiredAPS     int       `gorm:"not null" json:"required_aps"`
	Faculty         string    `gorm:"size:255" json:"faculty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Class struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SchoolID uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Name     string    `gorm:"size:50;not null" json:"name"`
	// Comma-separated section labels, e.g. "A,B,C".
	Sections string `gorm:"size:100;not null;default:'A'" json:"sections"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

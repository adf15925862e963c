package models

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SchoolID    uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Subject     string    `gorm:"size:100;not null" json:"subject"`
	ClassName   string    `gorm:"size:50;not null" json:"class_name"`
	Section     string    `gorm:"size:10" json:"section"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`

	CreatedBy User `gorm:"foreignkey:CreatedByID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

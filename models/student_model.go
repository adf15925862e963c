package models

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SchoolID        uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	AdmissionNumber string    `gorm:"size:20;not null;index" json:"admission_number"`
	ClassName       string    `gorm:"size:50;not null" json:"class_name"`
	Section         string    `gorm:"size:10;not null" json:"section"`
	ParentName      *string   `gorm:"size:255" json:"parent_name"`
	ParentPhone     *string   `gorm:"size:30" json:"parent_phone"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

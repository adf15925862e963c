package models

import (
	"time"

	"github.com/google/uuid"
)

type Timetable struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_timetable_class_section" json:"school_id"`
	ClassName string    `gorm:"size:50;not null;uniqueIndex:idx_timetable_class_section" json:"class_name"`
	Section   string    `gorm:"size:10;not null;uniqueIndex:idx_timetable_class_section" json:"section"`

	Entries []TimetableEntry `gorm:"foreignkey:TimetableID" json:"entries,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

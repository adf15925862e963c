package models

import (
	"time"

	"github.com/google/uuid"
)

type Test struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SchoolID        uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Subject         string    `gorm:"size:100;not null" json:"subject"`
	ClassName       string    `gorm:"size:50;not null" json:"class_name"`
	Section         string    `gorm:"size:10" json:"section"`
	DurationMinutes int       `gorm:"not null;default:60" json:"duration_minutes"`
	TotalMarks      int       `json:"total_marks"`
	Published       bool      `gorm:"default:false" json:"published"`
	CreatedByID     uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`

	Questions []Question `gorm:"foreignkey:TestID" json:"questions,omitempty"`
	CreatedBy User       `gorm:"foreignkey:CreatedByID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveTotalMarks falls back to the question mark sum when the
// test-level total was never set.
func (t *Test) EffectiveTotalMarks() int {
	if t.TotalMarks > 0 {
		return t.TotalMarks
	}
	total := 0
	for i := range t.Questions {
		total += t.Questions[i].MarkValue()
	}
	if total == 0 {
		total = 1
	}
	return total
}

// AllMCQ reports whether every question on the test is auto-gradable.
func (t *Test) AllMCQ() bool {
	if len(t.Questions) == 0 {
		return false
	}
	for i := range t.Questions {
		if !t.Questions[i].IsMCQ() {
			return false
		}
	}
	return true
}

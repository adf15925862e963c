package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TeacherProfile struct {
	UserID         uuid.UUID `gorm:"primary_key" json:"user_id"`
	SchoolID       uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`
	EmployeeNumber string    `gorm:"size:20" json:"employee_number"`
	// Comma-separated subject names, e.g. "Mathematics,Physics".
	Subjects      string  `gorm:"type:text" json:"subjects"`
	Qualification *string `gorm:"size:255" json:"qualification"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (t *TeacherProfile) SubjectList() []string {
	if t.Subjects == "" {
		return nil
	}
	parts := strings.Split(t.Subjects, ",")
	subjects := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			subjects = append(subjects, s)
		}
	}
	return subjects
}

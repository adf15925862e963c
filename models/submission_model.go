package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubmissionStatusPending = "pending"
	SubmissionStatusGraded  = "graded"
)

type Submission struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TestID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_test_student" json:"test_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_test_student" json:"student_id"`
	SchoolID  uuid.UUID `gorm:"type:uuid;not null;index" json:"school_id"`

	Status        string   `gorm:"size:20;not null;default:'pending'" json:"status"`
	MarksObtained *int     `json:"marks_obtained"`
	Percentage    *float64 `json:"percentage"`

	Answers []Answer `gorm:"foreignkey:SubmissionID" json:"answers,omitempty"`
	Test    Test     `gorm:"foreignkey:TestID" json:"-"`
	Student User     `gorm:"foreignkey:StudentID" json:"-"`

	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package models

import "github.com/google/uuid"

type Answer struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	QuestionID   uuid.UUID `gorm:"type:uuid;not null" json:"question_id"`

	StudentAnswer string `gorm:"type:text;not null" json:"student_answer"`

	// Grading side effects. IsCorrect stays nil for theory answers and
	// for answers whose question could not be matched.
	IsCorrect     *bool `json:"is_correct"`
	MarksObtained *int  `json:"marks_obtained"`
	// Snapshot of the question's correct answer taken at grading time,
	// so old submissions stay reviewable if the question bank changes.
	CorrectAnswer *string `gorm:"type:text" json:"correct_answer,omitempty"`

	Question Question `gorm:"foreignkey:QuestionID" json:"-"`
}

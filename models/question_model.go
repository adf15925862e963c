package models

import "github.com/google/uuid"

const (
	QuestionTypeMCQ    = "MCQ"
	QuestionTypeTheory = "THEORY"
)

type Question struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TestID        uuid.UUID `gorm:"type:uuid;not null;index" json:"test_id"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	QuestionType  string    `gorm:"size:50;not null;default:'MCQ'" json:"question_type"`
	Marks         int       `gorm:"not null;default:1" json:"marks"`
	Options       string    `gorm:"type:text" json:"options"`
	CorrectAnswer string    `gorm:"type:text" json:"correct_answer,omitempty"`
	Position      int       `gorm:"not null;default:0" json:"position"`
}

// MarkValue is the question's weight, defaulting to 1 when unset.
func (q *Question) MarkValue() int {
	if q.Marks <= 0 {
		return 1
	}
	return q.Marks
}

func (q *Question) IsMCQ() bool {
	return q.QuestionType == QuestionTypeMCQ
}

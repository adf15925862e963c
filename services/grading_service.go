package services

import (
	"strings"

	"github.com/custosapp/custos_backend/models"
	"github.com/google/uuid"
)

// GradeResult summarizes one auto-grading pass over a submission.
type GradeResult struct {
	AutoGradedMarks int `json:"marks"`
	TotalMCQMarks   int `json:"total_mcq_marks"`
	CorrectCount    int `json:"correct_count"`
	SkippedAnswers  int `json:"skipped_answers"`
}

// Percentage of the MCQ portion scored so far.
func (r GradeResult) Percentage() float64 {
	return float64(r.AutoGradedMarks) / float64(r.TotalMCQMarks) * 100
}

// answersMatch compares a student answer against the key. Comparison is
// case-insensitive with surrounding whitespace stripped, so "true" and
// " True " both match a key of "True".
func answersMatch(studentAnswer, correctAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(studentAnswer), strings.TrimSpace(correctAnswer))
}

// AutoGrade scores every MCQ answer on the submission against the test's
// question bank, mutating the answers in place. Theory answers keep only
// the student's raw text for later manual review. An answer whose
// question id has no match in the bank is skipped and counted, never an
// error. Re-running with unchanged inputs produces the same result.
func AutoGrade(submission *models.Submission, test *models.Test) GradeResult {
	questionsByID := make(map[uuid.UUID]*models.Question, len(test.Questions))
	for i := range test.Questions {
		questionsByID[test.Questions[i].ID] = &test.Questions[i]
	}

	var result GradeResult
	for i := range submission.Answers {
		answer := &submission.Answers[i]

		question, ok := questionsByID[answer.QuestionID]
		if !ok {
			result.SkippedAnswers++
			continue
		}
		if !question.IsMCQ() {
			continue
		}

		marks := question.MarkValue()
		result.TotalMCQMarks += marks

		correct := answersMatch(answer.StudentAnswer, question.CorrectAnswer)
		isCorrect := correct
		answer.IsCorrect = &isCorrect

		awarded := 0
		if correct {
			awarded = marks
			result.AutoGradedMarks += marks
			result.CorrectCount++
		}
		answer.MarksObtained = &awarded

		// Freeze the key onto the answer for review, right or wrong.
		snapshot := question.CorrectAnswer
		answer.CorrectAnswer = &snapshot
	}

	// Floor so callers can always divide by it.
	if result.TotalMCQMarks == 0 {
		result.TotalMCQMarks = 1
	}
	return result
}

// FinalizeSubmission applies an auto-grading result to the submission's
// top-level fields. Only an all-MCQ test can complete grading here; a
// test with any theory question stays pending for a human reviewer even
// though the MCQ marks are already stored.
func FinalizeSubmission(submission *models.Submission, result GradeResult, test *models.Test) {
	marks := result.AutoGradedMarks
	submission.MarksObtained = &marks

	if test.AllMCQ() {
		submission.Status = models.SubmissionStatusGraded
		pct := result.Percentage()
		submission.Percentage = &pct
	} else {
		submission.Status = models.SubmissionStatusPending
	}
}

// ApplyManualGrades records teacher-assigned marks for theory answers and
// completes grading once no theory answer is left unscored. The final
// percentage is taken over the test's full mark total, not just the MCQ
// portion.
func ApplyManualGrades(submission *models.Submission, test *models.Test, theoryMarks map[uuid.UUID]int) {
	questionsByID := make(map[uuid.UUID]*models.Question, len(test.Questions))
	for i := range test.Questions {
		questionsByID[test.Questions[i].ID] = &test.Questions[i]
	}

	total := 0
	allTheoryScored := true
	for i := range submission.Answers {
		answer := &submission.Answers[i]
		question, ok := questionsByID[answer.QuestionID]
		if !ok {
			continue
		}
		if question.IsMCQ() {
			if answer.MarksObtained != nil {
				total += *answer.MarksObtained
			}
			continue
		}
		if marks, scored := theoryMarks[answer.QuestionID]; scored {
			if marks < 0 {
				marks = 0
			}
			if max := question.MarkValue(); marks > max {
				marks = max
			}
			answer.MarksObtained = &marks
		}
		if answer.MarksObtained == nil {
			allTheoryScored = false
			continue
		}
		total += *answer.MarksObtained
	}

	submission.MarksObtained = &total
	if allTheoryScored {
		submission.Status = models.SubmissionStatusGraded
		pct := float64(total) / float64(test.EffectiveTotalMarks()) * 100
		submission.Percentage = &pct
	}
}

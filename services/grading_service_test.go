package services

import (
	"testing"

	"github.com/custosapp/custos_backend/models"
	"github.com/google/uuid"
)

func mcqQuestion(id uuid.UUID, marks int, correct string) models.Question {
	return models.Question{ID: id, QuestionType: models.QuestionTypeMCQ, Marks: marks, CorrectAnswer: correct}
}

func theoryQuestion(id uuid.UUID, marks int) models.Question {
	return models.Question{ID: id, QuestionType: models.QuestionTypeTheory, Marks: marks}
}

func submissionFor(answers ...models.Answer) *models.Submission {
	return &models.Submission{Status: models.SubmissionStatusPending, Answers: answers}
}

func TestAutoGrade_Scoring(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()

	tests := []struct {
		name      string
		questions []models.Question
		answers   []string
		marks     int
		total     int
		correct   int
	}{
		{
			name:      "all correct",
			questions: []models.Question{mcqQuestion(q1, 1, "A"), mcqQuestion(q2, 1, "B")},
			answers:   []string{"A", "B"},
			marks:     2, total: 2, correct: 2,
		},
		{
			name:      "one wrong",
			questions: []models.Question{mcqQuestion(q1, 1, "A"), mcqQuestion(q2, 1, "B")},
			answers:   []string{"A", "C"},
			marks:     1, total: 2, correct: 1,
		},
		{
			name:      "all wrong",
			questions: []models.Question{mcqQuestion(q1, 1, "A"), mcqQuestion(q2, 1, "B")},
			answers:   []string{"B", "A"},
			marks:     0, total: 2, correct: 0,
		},
		{
			name:      "weighted marks",
			questions: []models.Question{mcqQuestion(q1, 3, "A"), mcqQuestion(q2, 2, "B")},
			answers:   []string{"A", "C"},
			marks:     3, total: 5, correct: 1,
		},
		{
			name:      "zero marks defaults to one",
			questions: []models.Question{mcqQuestion(q1, 0, "A")},
			answers:   []string{"A"},
			marks:     1, total: 1, correct: 1,
		},
		{
			name:      "case and whitespace normalized",
			questions: []models.Question{mcqQuestion(q1, 1, "True"), mcqQuestion(q2, 1, "B")},
			answers:   []string{" true ", "b"},
			marks:     2, total: 2, correct: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			test := &models.Test{Questions: tc.questions}
			answers := make([]models.Answer, len(tc.answers))
			for i, a := range tc.answers {
				answers[i] = models.Answer{QuestionID: tc.questions[i].ID, StudentAnswer: a}
			}
			sub := submissionFor(answers...)

			got := AutoGrade(sub, test)
			if got.AutoGradedMarks != tc.marks {
				t.Errorf("AutoGradedMarks = %d, want %d", got.AutoGradedMarks, tc.marks)
			}
			if got.TotalMCQMarks != tc.total {
				t.Errorf("TotalMCQMarks = %d, want %d", got.TotalMCQMarks, tc.total)
			}
			if got.CorrectCount != tc.correct {
				t.Errorf("CorrectCount = %d, want %d", got.CorrectCount, tc.correct)
			}
		})
	}
}

func TestAutoGrade_AnswerSideEffects(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	test := &models.Test{Questions: []models.Question{mcqQuestion(q1, 2, "A"), mcqQuestion(q2, 1, "B")}}
	sub := submissionFor(
		models.Answer{QuestionID: q1, StudentAnswer: "A"},
		models.Answer{QuestionID: q2, StudentAnswer: "C"},
	)

	AutoGrade(sub, test)

	right := sub.Answers[0]
	if right.IsCorrect == nil || !*right.IsCorrect {
		t.Fatal("correct answer not flagged IsCorrect")
	}
	if right.MarksObtained == nil || *right.MarksObtained != 2 {
		t.Errorf("correct answer marks = %v, want 2", right.MarksObtained)
	}

	wrong := sub.Answers[1]
	if wrong.IsCorrect == nil || *wrong.IsCorrect {
		t.Fatal("wrong answer not flagged incorrect")
	}
	if wrong.MarksObtained == nil || *wrong.MarksObtained != 0 {
		t.Errorf("wrong answer marks = %v, want 0", wrong.MarksObtained)
	}

	// The key is snapshotted onto every graded answer, right or wrong.
	if right.CorrectAnswer == nil || *right.CorrectAnswer != "A" {
		t.Errorf("correct answer snapshot = %v, want A", right.CorrectAnswer)
	}
	if wrong.CorrectAnswer == nil || *wrong.CorrectAnswer != "B" {
		t.Errorf("wrong answer snapshot = %v, want B", wrong.CorrectAnswer)
	}
}

func TestAutoGrade_UnmatchedQuestionSkipped(t *testing.T) {
	q1 := uuid.New()
	test := &models.Test{Questions: []models.Question{mcqQuestion(q1, 1, "A")}}
	sub := submissionFor(
		models.Answer{QuestionID: q1, StudentAnswer: "A"},
		models.Answer{QuestionID: uuid.New(), StudentAnswer: "B"},
	)

	got := AutoGrade(sub, test)
	if got.SkippedAnswers != 1 {
		t.Errorf("SkippedAnswers = %d, want 1", got.SkippedAnswers)
	}
	if got.AutoGradedMarks != 1 || got.TotalMCQMarks != 1 {
		t.Errorf("score = %d/%d, want 1/1", got.AutoGradedMarks, got.TotalMCQMarks)
	}
	stale := sub.Answers[1]
	if stale.IsCorrect != nil || stale.MarksObtained != nil || stale.CorrectAnswer != nil {
		t.Error("unmatched answer was mutated, want untouched")
	}
}

func TestAutoGrade_TheoryLeftUngraded(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	test := &models.Test{Questions: []models.Question{mcqQuestion(q1, 1, "A"), theoryQuestion(q2, 5)}}
	sub := submissionFor(
		models.Answer{QuestionID: q1, StudentAnswer: "A"},
		models.Answer{QuestionID: q2, StudentAnswer: "Photosynthesis converts light into chemical energy."},
	)

	got := AutoGrade(sub, test)
	if got.TotalMCQMarks != 1 {
		t.Errorf("TotalMCQMarks = %d, want 1 (theory excluded)", got.TotalMCQMarks)
	}
	theory := sub.Answers[1]
	if theory.IsCorrect != nil || theory.MarksObtained != nil {
		t.Error("theory answer was graded by the auto pass")
	}
}

func TestAutoGrade_TotalNeverZero(t *testing.T) {
	test := &models.Test{Questions: []models.Question{theoryQuestion(uuid.New(), 5)}}
	sub := submissionFor()

	got := AutoGrade(sub, test)
	if got.TotalMCQMarks != 1 {
		t.Errorf("TotalMCQMarks = %d, want floor of 1", got.TotalMCQMarks)
	}
}

func TestAutoGrade_Idempotent(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	test := &models.Test{Questions: []models.Question{mcqQuestion(q1, 2, "A"), mcqQuestion(q2, 3, "B")}}
	sub := submissionFor(
		models.Answer{QuestionID: q1, StudentAnswer: "A"},
		models.Answer{QuestionID: q2, StudentAnswer: "C"},
	)

	first := AutoGrade(sub, test)
	second := AutoGrade(sub, test)
	if first != second {
		t.Errorf("regrade changed result: first %+v, second %+v", first, second)
	}
}

func TestFinalizeSubmission_AllMCQGraded(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	test := &models.Test{Questions: []models.Question{mcqQuestion(q1, 1, "A"), mcqQuestion(q2, 1, "B")}}
	sub := submissionFor(
		models.Answer{QuestionID: q1, StudentAnswer: "A"},
		models.Answer{QuestionID: q2, StudentAnswer: "B"},
	)

	result := AutoGrade(sub, test)
	FinalizeSubmission(sub, result, test)

	if sub.Status != models.SubmissionStatusGraded {
		t.Fatalf("status = %q, want graded", sub.Status)
	}
	if sub.MarksObtained == nil || *sub.MarksObtained != 2 {
		t.Errorf("MarksObtained = %v, want 2", sub.MarksObtained)
	}
	if sub.Percentage == nil || *sub.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100", sub.Percentage)
	}
}

func TestFinalizeSubmission_PartialScore(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	test := &models.Test{Questions: []models.Question{mcqQuestion(q1, 1, "A"), mcqQuestion(q2, 1, "B")}}
	sub := submissionFor(
		models.Answer{QuestionID: q1, StudentAnswer: "A"},
		models.Answer{QuestionID: q2, StudentAnswer: "C"},
	)

	result := AutoGrade(sub, test)
	FinalizeSubmission(sub, result, test)

	if result.AutoGradedMarks != 1 || result.CorrectCount != 1 {
		t.Errorf("got %d marks %d correct, want 1 and 1", result.AutoGradedMarks, result.CorrectCount)
	}
	if sub.Percentage == nil || *sub.Percentage != 50 {
		t.Errorf("Percentage = %v, want 50", sub.Percentage)
	}
}

func TestFinalizeSubmission_MixedTestStaysPending(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	test := &models.Test{Questions: []models.Question{mcqQuestion(q1, 1, "A"), theoryQuestion(q2, 5)}}
	sub := submissionFor(
		models.Answer{QuestionID: q1, StudentAnswer: "A"},
		models.Answer{QuestionID: q2, StudentAnswer: "long form answer"},
	)

	result := AutoGrade(sub, test)
	FinalizeSubmission(sub, result, test)

	if sub.Status != models.SubmissionStatusPending {
		t.Fatalf("status = %q, want pending until manual review", sub.Status)
	}
	if sub.MarksObtained == nil || *sub.MarksObtained != 1 {
		t.Errorf("MarksObtained = %v, want MCQ portion of 1", sub.MarksObtained)
	}
	if sub.Percentage != nil {
		t.Errorf("Percentage = %v, want nil while pending", sub.Percentage)
	}
}

func TestApplyManualGrades(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	test := &models.Test{Questions: []models.Question{mcqQuestion(q1, 2, "A"), theoryQuestion(q2, 8)}}
	sub := submissionFor(
		models.Answer{QuestionID: q1, StudentAnswer: "A"},
		models.Answer{QuestionID: q2, StudentAnswer: "essay text"},
	)
	FinalizeSubmission(sub, AutoGrade(sub, test), test)

	ApplyManualGrades(sub, test, map[uuid.UUID]int{q2: 6})

	if sub.Status != models.SubmissionStatusGraded {
		t.Fatalf("status = %q, want graded after theory scored", sub.Status)
	}
	if sub.MarksObtained == nil || *sub.MarksObtained != 8 {
		t.Errorf("MarksObtained = %v, want 8", sub.MarksObtained)
	}
	if sub.Percentage == nil || *sub.Percentage != 80 {
		t.Errorf("Percentage = %v, want 80", sub.Percentage)
	}
}

func TestApplyManualGrades_ClampsAndStaysPending(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	q3 := uuid.New()
	test := &models.Test{Questions: []models.Question{mcqQuestion(q1, 1, "A"), theoryQuestion(q2, 5), theoryQuestion(q3, 5)}}
	sub := submissionFor(
		models.Answer{QuestionID: q1, StudentAnswer: "A"},
		models.Answer{QuestionID: q2, StudentAnswer: "one"},
		models.Answer{QuestionID: q3, StudentAnswer: "two"},
	)
	FinalizeSubmission(sub, AutoGrade(sub, test), test)

	// Over-award gets clamped to the question's marks; q3 still unscored.
	ApplyManualGrades(sub, test, map[uuid.UUID]int{q2: 99})

	if sub.Answers[1].MarksObtained == nil || *sub.Answers[1].MarksObtained != 5 {
		t.Errorf("theory marks = %v, want clamped to 5", sub.Answers[1].MarksObtained)
	}
	if sub.Status != models.SubmissionStatusPending {
		t.Errorf("status = %q, want pending with one theory answer unscored", sub.Status)
	}
}

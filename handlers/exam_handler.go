package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/custosapp/custos_backend/database"
	"github.com/custosapp/custos_backend/models"
	"github.com/custosapp/custos_backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRequest struct {
	QuestionText  string `json:"question_text" validate:"required"`
	QuestionType  string `json:"question_type" validate:"required"`
	Marks         int    `json:"marks" validate:"omitempty,gt=0"`
	Options       string `json:"options"`
	CorrectAnswer string `json:"correct_answer"`
}

type TestRequest struct {
	Title           string            `json:"title" validate:"required"`
	Subject         string            `json:"subject" validate:"required"`
	ClassName       string            `json:"class_name" validate:"required"`
	Section         string            `json:"section"`
	DurationMinutes int               `json:"duration_minutes" validate:"required,gt=0"`
	TotalMarks      int               `json:"total_marks" validate:"omitempty,gt=0"`
	Questions       []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

func CreateTest(c *fiber.Ctx) error {
	teacherID, _, schoolID := currentUser(c)

	var req TestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	for _, q := range req.Questions {
		if q.QuestionType == models.QuestionTypeMCQ && q.CorrectAnswer == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "MCQ questions require a correct_answer"})
		}
	}

	test := models.Test{
		SchoolID:        schoolID,
		Title:           req.Title,
		Subject:         req.Subject,
		ClassName:       req.ClassName,
		Section:         req.Section,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		CreatedByID:     teacherID,
	}
	for i, q := range req.Questions {
		test.Questions = append(test.Questions, models.Question{
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			Marks:         q.Marks,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Position:      i,
		})
	}

	if err := database.DB.Create(&test).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create test"})
	}

	return c.Status(fiber.StatusCreated).JSON(test)
}

func ListTests(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	var tests []models.Test
	database.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).Where("school_id = ?", schoolID).Find(&tests)
	return c.JSON(tests)
}

func GetTest(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	testID := c.Params("testId")

	var test models.Test
	if err := database.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&test, "id = ? AND school_id = ?", testID, schoolID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}
	return c.JSON(test)
}

func PublishTest(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	testID := c.Params("testId")

	var test models.Test
	if err := database.DB.First(&test, "id = ? AND school_id = ?", testID, schoolID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	test.Published = true
	database.DB.Save(&test)
	return c.JSON(test)
}

func DeleteTest(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	testID := c.Params("testId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var test models.Test
		if err := tx.First(&test, "id = ? AND school_id = ?", testID, schoolID).Error; err != nil {
			return err
		}
		var submissionIDs []uuid.UUID
		if err := tx.Model(&models.Submission{}).Where("test_id = ?", test.ID).Pluck("id", &submissionIDs).Error; err != nil {
			return err
		}
		if len(submissionIDs) > 0 {
			if err := tx.Delete(&models.Answer{}, "submission_id IN ?", submissionIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Submission{}, "id IN ?", submissionIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Question{}, "test_id = ?", test.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&test).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete test"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StudentListTests hides answer keys: questions are not preloaded here,
// students fetch them through StartTest.
func StudentListTests(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	var tests []models.Test
	database.DB.Select("id", "title", "subject", "class_name", "section", "duration_minutes", "created_at").
		Where("school_id = ? AND published = ?", schoolID, true).
		Find(&tests)
	return c.JSON(tests)
}

func StartTest(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	testID := c.Params("testId")

	var test models.Test
	if err := database.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&test, "id = ? AND school_id = ? AND published = ?", testID, schoolID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	type QuestionForStudent struct {
		ID           uuid.UUID `json:"id"`
		QuestionText string    `json:"question_text"`
		QuestionType string    `json:"question_type"`
		Marks        int       `json:"marks"`
		Options      string    `json:"options"`
	}

	questionsForStudent := make([]QuestionForStudent, len(test.Questions))
	for i, q := range test.Questions {
		questionsForStudent[i] = QuestionForStudent{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Marks:        q.MarkValue(),
			Options:      q.Options,
		}
	}

	return c.JSON(fiber.Map{
		"test_id":          test.ID,
		"test_title":       test.Title,
		"duration_minutes": test.DurationMinutes,
		"questions":        questionsForStudent,
	})
}

type SubmitTestRequest struct {
	Answers []struct {
		QuestionID string `json:"question_id" validate:"required,uuid"`
		Answer     string `json:"answer" validate:"required,max=10000"`
	} `json:"answers" validate:"required,min=1"`
}

// SubmitTest records a student's one attempt at a test and runs the
// auto-grading pass over it. All-MCQ tests come back fully graded; tests
// with theory questions keep their MCQ score and wait for manual review.
func SubmitTest(c *fiber.Ctx) error {
	studentID, _, schoolID := currentUser(c)
	testID := c.Params("testId")

	var req SubmitTestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var test models.Test
	if err := database.DB.Preload("Questions").First(&test, "id = ? AND school_id = ?", testID, schoolID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	var existing models.Submission
	err := database.DB.Where("test_id = ? AND student_id = ?", test.ID, studentID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You have already submitted this test"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	submission := models.Submission{
		TestID:      test.ID,
		StudentID:   studentID,
		SchoolID:    schoolID,
		Status:      models.SubmissionStatusPending,
		SubmittedAt: time.Now(),
	}
	for _, a := range req.Answers {
		questionID, err := uuid.Parse(a.QuestionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id in answers"})
		}
		submission.Answers = append(submission.Answers, models.Answer{
			QuestionID:    questionID,
			StudentAnswer: a.Answer,
		})
	}

	result := services.AutoGrade(&submission, &test)
	services.FinalizeSubmission(&submission, result, &test)

	if result.SkippedAnswers > 0 {
		log.Printf("Grading test %s for student %s: %d answers referenced unknown questions", test.ID, studentID, result.SkippedAnswers)
	}

	// Answers ride along via the association, so the graded submission
	// lands in one transaction. The unique index on (test_id,
	// student_id) backs the duplicate pre-check above.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&submission).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You have already submitted this test"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save submission"})
	}

	return c.JSON(fiber.Map{
		"message":    "Test submitted successfully",
		"submission": submission,
		"auto_graded": fiber.Map{
			"marks":           result.AutoGradedMarks,
			"total_mcq_marks": result.TotalMCQMarks,
			"correct_count":   result.CorrectCount,
			"skipped_answers": result.SkippedAnswers,
			"percentage":      result.Percentage(),
		},
	})
}

package handlers

import (
	"errors"

	"github.com/custosapp/custos_backend/database"
	"github.com/custosapp/custos_backend/models"
	"github.com/custosapp/custos_backend/notifications"
	"github.com/custosapp/custos_backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ListSubmissions(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	query := database.DB.Preload("Answers").Where("school_id = ?", schoolID)
	if testID := c.Query("test_id"); testID != "" {
		query = query.Where("test_id = ?", testID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var submissions []models.Submission
	query.Order("submitted_at desc").Find(&submissions)
	return c.JSON(submissions)
}

func GetSubmission(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	submissionID := c.Params("submissionId")

	var submission models.Submission
	if err := database.DB.Preload("Answers").First(&submission, "id = ? AND school_id = ?", submissionID, schoolID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
	}
	return c.JSON(submission)
}

// GetMySubmissions lets a student review their own graded work. Answer
// keys are only visible on graded answers (the snapshot taken at
// grading time), never for pending theory items.
func GetMySubmissions(c *fiber.Ctx) error {
	studentID, _, schoolID := currentUser(c)

	var submissions []models.Submission
	database.DB.Preload("Answers").
		Where("student_id = ? AND school_id = ?", studentID, schoolID).
		Order("submitted_at desc").
		Find(&submissions)
	return c.JSON(submissions)
}

type ManualGradeRequest struct {
	TheoryMarks []struct {
		QuestionID string `json:"question_id" validate:"required,uuid"`
		Marks      int    `json:"marks" validate:"min=0"`
	} `json:"theory_marks" validate:"required,min=1"`
}

// GradeSubmission records teacher marks for theory answers. Once every
// theory answer has a score the submission flips to graded and the
// student is notified.
func GradeSubmission(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	submissionID := c.Params("submissionId")

	var req ManualGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var submission models.Submission
	if err := database.DB.Preload("Answers").Preload("Student").
		First(&submission, "id = ? AND school_id = ?", submissionID, schoolID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
	}

	var test models.Test
	if err := database.DB.Preload("Questions").First(&test, "id = ?", submission.TestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	theoryMarks := make(map[uuid.UUID]int, len(req.TheoryMarks))
	for _, m := range req.TheoryMarks {
		questionID, err := uuid.Parse(m.QuestionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid question id"})
		}
		theoryMarks[questionID] = m.Marks
	}

	services.ApplyManualGrades(&submission, &test, theoryMarks)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range submission.Answers {
			if err := tx.Save(&submission.Answers[i]).Error; err != nil {
				return err
			}
		}
		return tx.Save(&submission).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save grades"})
	}

	if submission.Status == models.SubmissionStatusGraded && submission.Student.Email != "" {
		go notifications.SendEmail(
			submission.Student.FullName,
			submission.Student.Email,
			"Your test has been graded",
			"<h1>Results available</h1><p>Your test \""+test.Title+"\" has been graded. Log in to see your score.</p>",
		)
	}

	return c.JSON(submission)
}

// RegradeSubmission re-runs the auto-grading pass, e.g. after a teacher
// fixes a wrong answer key before publishing results. Manual theory
// marks already recorded survive untouched.
func RegradeSubmission(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	submissionID := c.Params("submissionId")

	var submission models.Submission
	if err := database.DB.Preload("Answers").First(&submission, "id = ? AND school_id = ?", submissionID, schoolID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
	}

	var test models.Test
	if err := database.DB.Preload("Questions").First(&test, "id = ?", submission.TestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Test not found"})
	}

	result := services.AutoGrade(&submission, &test)
	services.FinalizeSubmission(&submission, result, &test)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range submission.Answers {
			if err := tx.Save(&submission.Answers[i]).Error; err != nil {
				return err
			}
		}
		return tx.Save(&submission).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Submission not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save regraded submission"})
	}

	return c.JSON(fiber.Map{
		"submission": submission,
		"auto_graded": fiber.Map{
			"marks":           result.AutoGradedMarks,
			"total_mcq_marks": result.TotalMCQMarks,
			"correct_count":   result.CorrectCount,
			"skipped_answers": result.SkippedAnswers,
		},
	})
}

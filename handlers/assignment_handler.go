package handlers

import (
	"time"

	"github.com/custosapp/custos_backend/database"
	"github.com/custosapp/custos_backend/models"
	"github.com/gofiber/fiber/v2"
)

type AssignmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Subject     string `json:"subject" validate:"required"`
	ClassName   string `json:"class_name" validate:"required"`
	Section     string `json:"section"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
}

func CreateAssignment(c *fiber.Ctx) error {
	teacherID, _, schoolID := currentUser(c)

	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	dueDate, _ := time.Parse("2006-01-02", req.DueDate)
	assignment := models.Assignment{
		SchoolID:    schoolID,
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		ClassName:   req.ClassName,
		Section:     req.Section,
		DueDate:     dueDate,
		CreatedByID: teacherID,
	}
	if err := database.DB.Create(&assignment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assignment"})
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

func ListAssignments(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	query := database.DB.Where("school_id = ?", schoolID)
	if className := c.Query("class_name"); className != "" {
		query = query.Where("class_name = ?", className)
	}

	var assignments []models.Assignment
	query.Order("due_date").Find(&assignments)
	return c.JSON(assignments)
}

func UpdateAssignment(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	assignmentID := c.Params("assignmentId")

	var assignment models.Assignment
	if err := database.DB.First(&assignment, "id = ? AND school_id = ?", assignmentID, schoolID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}

	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	dueDate, _ := time.Parse("2006-01-02", req.DueDate)
	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.Subject = req.Subject
	assignment.ClassName = req.ClassName
	assignment.Section = req.Section
	assignment.DueDate = dueDate
	database.DB.Save(&assignment)

	return c.JSON(assignment)
}

func DeleteAssignment(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	assignmentID := c.Params("assignmentId")

	result := database.DB.Delete(&models.Assignment{}, "id = ? AND school_id = ?", assignmentID, schoolID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete assignment"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

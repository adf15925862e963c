package handlers

import (
	"errors"

	"github.com/custosapp/custos_backend/database"
	"github.com/custosapp/custos_backend/models"
	"github.com/custosapp/custos_backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SchoolRequest struct {
	Name    string  `json:"name" validate:"required,min=3"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

func CreateSchool(c *fiber.Ctx) error {
	var req SchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	school := models.School{Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := database.DB.Create(&school).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create school"})
	}
	return c.Status(fiber.StatusCreated).JSON(school)
}

func ListSchools(c *fiber.Ctx) error {
	var schools []models.School
	database.DB.Find(&schools)
	return c.JSON(schools)
}

type TeacherProfileRequest struct {
	UserID         string  `json:"user_id" validate:"required,uuid"`
	EmployeeNumber string  `json:"employee_number"`
	Subjects       string  `json:"subjects" validate:"required"`
	Qualification  *string `json:"qualification"`
}

func CreateTeacherProfile(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	var req TeacherProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID, _ := uuid.Parse(req.UserID)
	var user models.User
	if err := database.DB.First(&user, "id = ? AND school_id = ? AND role = ?", userID, schoolID, models.RoleTeacher).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher user not found in this school"})
	}

	var existing models.TeacherProfile
	if err := database.DB.First(&existing, "user_id = ?", userID).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Teacher profile already exists"})
	}

	profile := models.TeacherProfile{
		UserID:         userID,
		SchoolID:       schoolID,
		EmployeeNumber: req.EmployeeNumber,
		Subjects:       req.Subjects,
		Qualification:  req.Qualification,
	}
	if err := database.DB.Create(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create teacher profile"})
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func ListTeacherProfiles(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	var profiles []models.TeacherProfile
	database.DB.Preload("User").Where("school_id = ?", schoolID).Find(&profiles)
	return c.JSON(profiles)
}

func UpdateTeacherProfile(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	userID := c.Params("userId")

	var profile models.TeacherProfile
	if err := database.DB.First(&profile, "user_id = ? AND school_id = ?", userID, schoolID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher profile not found"})
	}

	var req TeacherProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.Subjects != "" {
		profile.Subjects = req.Subjects
	}
	if req.EmployeeNumber != "" {
		profile.EmployeeNumber = req.EmployeeNumber
	}
	if req.Qualification != nil {
		profile.Qualification = req.Qualification
	}
	database.DB.Save(&profile)
	return c.JSON(profile)
}

type ClassRequest struct {
	Name     string `json:"name" validate:"required"`
	Sections string `json:"sections" validate:"required"`
}

func CreateClass(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	class := models.Class{SchoolID: schoolID, Name: req.Name, Sections: req.Sections}
	if err := database.DB.Create(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}
	return c.Status(fiber.StatusCreated).JSON(class)
}

func ListClasses(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	var classes []models.Class
	database.DB.Where("school_id = ?", schoolID).Order("name").Find(&classes)
	return c.JSON(classes)
}

type StudentRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=3"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6"`
	ClassName   string  `json:"class_name" validate:"required"`
	Section     string  `json:"section" validate:"required"`
	ParentName  *string `json:"parent_name"`
	ParentPhone *string `json:"parent_phone"`
}

// EnrollStudent creates the login account and the roster record
// together, with a generated admission number.
func EnrollStudent(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	var student models.Student
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			FullName: req.FullName,
			Email:    req.Email,
			Password: string(hashedPassword),
			Role:     models.RoleStudent,
			SchoolID: &schoolID,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		admissionNumber, err := utils.GenerateAdmissionNumber(tx, schoolID)
		if err != nil {
			return err
		}

		student = models.Student{
			UserID:          user.ID,
			SchoolID:        schoolID,
			AdmissionNumber: admissionNumber,
			ClassName:       req.ClassName,
			Section:         req.Section,
			ParentName:      req.ParentName,
			ParentPhone:     req.ParentPhone,
		}
		return tx.Create(&student).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll student"})
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func ListStudents(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	query := database.DB.Preload("User").Where("school_id = ?", schoolID)
	if className := c.Query("class_name"); className != "" {
		query = query.Where("class_name = ?", className)
	}
	if section := c.Query("section"); section != "" {
		query = query.Where("section = ?", section)
	}

	var students []models.Student
	query.Order("admission_number").Find(&students)
	return c.JSON(students)
}

func DeleteStudent(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	studentID := c.Params("studentId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.First(&student, "id = ? AND school_id = ?", studentID, schoolID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&student).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", student.UserID).Update("is_active", false).Error
	})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/custosapp/custos_backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const admissionDigits = 4

// GenerateAdmissionNumber produces a year-prefixed number like
// "ADM-2026-0482", retrying until it is unused within the school.
func GenerateAdmissionNumber(tx *gorm.DB, schoolID uuid.UUID) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	year := time.Now().Year()

	for {
		number := fmt.Sprintf("ADM-%d-%0*d", year, admissionDigits, seededRand.Intn(10000))

		var student models.Student
		err := tx.Where("school_id = ? AND admission_number = ?", schoolID, number).First(&student).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return number, nil
			}
			return "", err
		}
	}
}

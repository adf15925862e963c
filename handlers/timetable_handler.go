package handlers

import (
	"sync"

	"github.com/custosapp/custos_backend/database"
	"github.com/custosapp/custos_backend/models"
	"github.com/custosapp/custos_backend/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Regeneration is delete-then-recreate per timetable; concurrent runs
// for the same grid would interleave stale and fresh entries. One lock
// per class-section key serializes them within this process.
var (
	timetableLocksMu sync.Mutex
	timetableLocks   = make(map[string]*sync.Mutex)
)

func lockTimetable(key string) *sync.Mutex {
	timetableLocksMu.Lock()
	defer timetableLocksMu.Unlock()
	if _, ok := timetableLocks[key]; !ok {
		timetableLocks[key] = &sync.Mutex{}
	}
	return timetableLocks[key]
}

// GenerateTimetables runs the allocator over the requested classes and
// replaces each class-section's stored grid with the fresh one. Cells
// the allocator could not fill legally are reported, not failed.
func GenerateTimetables(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)

	var req services.TimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := services.GenerateTimetables(req)

	summaries := make([]fiber.Map, 0, len(result.Schedules))
	for _, schedule := range result.Schedules {
		key := schoolID.String() + "/" + schedule.ClassName + "/" + schedule.Section
		lock := lockTimetable(key)
		lock.Lock()

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var timetable models.Timetable
			err := tx.Where("school_id = ? AND class_name = ? AND section = ?", schoolID, schedule.ClassName, schedule.Section).
				First(&timetable).Error
			if err != nil {
				timetable = models.Timetable{SchoolID: schoolID, ClassName: schedule.ClassName, Section: schedule.Section}
				if err := tx.Create(&timetable).Error; err != nil {
					return err
				}
			}

			if err := tx.Delete(&models.TimetableEntry{}, "timetable_id = ?", timetable.ID).Error; err != nil {
				return err
			}
			for i := range schedule.Entries {
				schedule.Entries[i].TimetableID = timetable.ID
			}
			if len(schedule.Entries) > 0 {
				if err := tx.Create(&schedule.Entries).Error; err != nil {
					return err
				}
			}
			return nil
		})
		lock.Unlock()

		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save timetable for " + schedule.ClassName + "-" + schedule.Section})
		}

		summaries = append(summaries, fiber.Map{
			"class_name":       schedule.ClassName,
			"section":          schedule.Section,
			"periods_assigned": len(schedule.Entries),
			"unassigned_cells": schedule.Unassigned,
		})
	}

	return c.JSON(fiber.Map{
		"message":           "Timetables generated",
		"total_periods":     result.TotalPeriods,
		"classes_scheduled": result.ClassesScheduled,
		"unassigned_cells":  result.UnassignedCells,
		"classes":           summaries,
	})
}

func GetTimetable(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	className := c.Params("className")
	section := c.Params("section")

	var timetable models.Timetable
	if err := database.DB.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("day, period_num")
	}).First(&timetable, "school_id = ? AND class_name = ? AND section = ?", schoolID, className, section).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Timetable not found"})
	}
	return c.JSON(timetable)
}

func DeleteTimetable(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	timetableID := c.Params("timetableId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var timetable models.Timetable
		if err := tx.First(&timetable, "id = ? AND school_id = ?", timetableID, schoolID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.TimetableEntry{}, "timetable_id = ?", timetable.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&timetable).Error
	})
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Timetable not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type EntryEditRequest struct {
	Subject   string  `json:"subject" validate:"required"`
	TeacherID string  `json:"teacher_id" validate:"required"`
	Teacher   string  `json:"teacher" validate:"required"`
	Room      *string `json:"room"`
	EntryType string  `json:"entry_type" validate:"omitempty,oneof=regular lab activity"`
}

// UpdateTimetableEntry overwrites one cell by hand, bypassing quota
// tracking. The school-wide double-booking check still runs: putting a
// teacher in two rooms at once is rejected even for admins.
func UpdateTimetableEntry(c *fiber.Ctx) error {
	_, _, schoolID := currentUser(c)
	timetableID := c.Params("timetableId")
	entryID := c.Params("entryId")

	var req EntryEditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var timetable models.Timetable
	if err := database.DB.First(&timetable, "id = ? AND school_id = ?", timetableID, schoolID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Timetable not found"})
	}

	var entry models.TimetableEntry
	if err := database.DB.First(&entry, "id = ? AND timetable_id = ?", entryID, timetable.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Timetable entry not found"})
	}

	var conflicts int64
	database.DB.Model(&models.TimetableEntry{}).
		Joins("JOIN timetables ON timetables.id = timetable_entries.timetable_id").
		Where("timetables.school_id = ? AND timetable_entries.day = ? AND timetable_entries.period_num = ? AND timetable_entries.teacher_id = ? AND timetable_entries.id != ?",
			schoolID, entry.Day, entry.PeriodNum, req.TeacherID, entry.ID).
		Count(&conflicts)
	if conflicts > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Teacher is already scheduled in another class for this slot"})
	}

	entry.Subject = req.Subject
	entry.TeacherID = req.TeacherID
	entry.Teacher = req.Teacher
	entry.Room = req.Room
	if req.EntryType != "" {
		entry.EntryType = req.EntryType
	}

	if err := database.DB.Save(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update entry"})
	}
	return c.JSON(entry)
}

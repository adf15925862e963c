package services

import (
	"sort"

	"github.com/custosapp/custos_backend/models"
)

const (
	PeriodTypeRegular = "regular"
	PeriodTypeBreak   = "break"
	PeriodTypeLunch   = "lunch"
)

type TeacherResource struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Subjects []string `json:"subjects" validate:"required,min=1"`
}

type ClassGroup struct {
	Name     string   `json:"name" validate:"required"`
	Sections []string `json:"sections" validate:"required,min=1"`
}

type PeriodSlot struct {
	Number    int    `json:"number" validate:"required,gt=0"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Type      string `json:"type" validate:"omitempty,oneof=regular break lunch"`
}

// AllocatorConstraints are accepted for forward compatibility. The
// allocator currently enforces only its quota-ratio tie-break; these
// preferences are not applied.
type AllocatorConstraints struct {
	MaxConsecutivePeriods int    `json:"max_consecutive_periods"`
	AvoidRepeats          bool   `json:"avoid_back_to_back_repeats"`
	MorningSubject        string `json:"morning_subject"`
}

type TimetableRequest struct {
	Teachers            []TeacherResource    `json:"teachers" validate:"required,min=1,dive"`
	Classes             []ClassGroup         `json:"classes" validate:"required,min=1,dive"`
	WorkingDays         []string             `json:"working_days" validate:"required,min=1"`
	Periods             []PeriodSlot         `json:"periods" validate:"required,min=1,dive"`
	SubjectHoursPerWeek map[string]int       `json:"subject_hours_per_week" validate:"required,min=1"`
	Constraints         AllocatorConstraints `json:"constraints"`
}

// SlotKey identifies one teacher commitment. A teacher booked under a
// key is unavailable to every other class grid for that day+period.
type SlotKey struct {
	Day       string
	Period    int
	TeacherID string
}

type ClassSchedule struct {
	ClassName  string                  `json:"class_name"`
	Section    string                  `json:"section"`
	Entries    []models.TimetableEntry `json:"entries"`
	Unassigned int                     `json:"unassigned_cells"`
}

type AllocationResult struct {
	Schedules        []ClassSchedule `json:"schedules"`
	TotalPeriods     int             `json:"total_periods"`
	ClassesScheduled int             `json:"classes_scheduled"`
	UnassignedCells  int             `json:"unassigned_cells"`
}

// GenerateTimetables fills every (day, regular period) cell of every
// class-section grid with a (subject, teacher) pair. It never
// double-books a teacher across grids in the same slot, never assigns a
// subject to a teacher who does not teach it, and never assigns a
// break or lunch slot. Cells it cannot fill legally stay empty and are
// counted per class so callers can report the shortfall.
//
// Subject selection is greedy: among subjects with remaining weekly
// quota and an available teacher, the one with the largest
// remaining-to-assigned ratio wins, which spreads subjects across the
// week instead of clustering them on Monday. Subject name breaks
// remaining ties, so a given request always produces the same grid.
func GenerateTimetables(req TimetableRequest) AllocationResult {
	teachersBySubject := make(map[string][]TeacherResource)
	for _, t := range req.Teachers {
		for _, s := range t.Subjects {
			teachersBySubject[s] = append(teachersBySubject[s], t)
		}
	}

	subjects := make([]string, 0, len(req.SubjectHoursPerWeek))
	for s := range req.SubjectHoursPerWeek {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	busy := make(map[SlotKey]bool)

	var result AllocationResult
	for _, class := range req.Classes {
		for _, section := range class.Sections {
			schedule := allocateSection(class.Name, section, subjects, teachersBySubject, req, busy)
			result.TotalPeriods += len(schedule.Entries)
			result.UnassignedCells += schedule.Unassigned
			result.Schedules = append(result.Schedules, schedule)
			result.ClassesScheduled++
		}
	}
	return result
}

func allocateSection(className, section string, subjects []string, teachersBySubject map[string][]TeacherResource, req TimetableRequest, busy map[SlotKey]bool) ClassSchedule {
	remaining := make(map[string]int, len(subjects))
	assigned := make(map[string]int, len(subjects))
	for _, s := range subjects {
		remaining[s] = req.SubjectHoursPerWeek[s]
	}

	schedule := ClassSchedule{ClassName: className, Section: section}
	for _, day := range req.WorkingDays {
		for _, period := range req.Periods {
			if period.Type != "" && period.Type != PeriodTypeRegular {
				continue
			}

			subject, teacher, ok := pickAssignment(day, period.Number, subjects, remaining, assigned, teachersBySubject, busy)
			if !ok {
				schedule.Unassigned++
				continue
			}

			busy[SlotKey{Day: day, Period: period.Number, TeacherID: teacher.ID}] = true
			remaining[subject]--
			assigned[subject]++

			schedule.Entries = append(schedule.Entries, models.TimetableEntry{
				Day:       day,
				PeriodNum: period.Number,
				StartTime: period.StartTime,
				EndTime:   period.EndTime,
				Subject:   subject,
				TeacherID: teacher.ID,
				Teacher:   teacher.Name,
				EntryType: models.EntryTypeRegular,
			})
		}
	}
	return schedule
}

// pickAssignment selects the best legal (subject, teacher) pair for one
// cell, or reports that none exists.
func pickAssignment(day string, period int, subjects []string, remaining, assigned map[string]int, teachersBySubject map[string][]TeacherResource, busy map[SlotKey]bool) (string, TeacherResource, bool) {
	bestSubject := ""
	var bestTeacher TeacherResource
	bestRatio := -1.0

	for _, subject := range subjects {
		if remaining[subject] <= 0 {
			continue
		}
		teacher, free := firstFreeTeacher(teachersBySubject[subject], day, period, busy)
		if !free {
			continue
		}
		ratio := float64(remaining[subject]) / float64(assigned[subject]+1)
		if ratio > bestRatio {
			bestRatio = ratio
			bestSubject = subject
			bestTeacher = teacher
		}
	}

	if bestSubject == "" {
		return "", TeacherResource{}, false
	}
	return bestSubject, bestTeacher, true
}

func firstFreeTeacher(candidates []TeacherResource, day string, period int, busy map[SlotKey]bool) (TeacherResource, bool) {
	for _, t := range candidates {
		if !busy[SlotKey{Day: day, Period: period, TeacherID: t.ID}] {
			return t, true
		}
	}
	return TeacherResource{}, false
}

// TeachesSubject reports whether the named teacher covers the subject,
// used by the manual-edit path to keep invariant checks in one place.
func TeachesSubject(teacher TeacherResource, subject string) bool {
	for _, s := range teacher.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

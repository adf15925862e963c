package models

import "github.com/google/uuid"

const (
	EntryTypeRegular  = "regular"
	EntryTypeLab      = "lab"
	EntryTypeActivity = "activity"
)

type TimetableEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TimetableID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_timetable_slot" json:"timetable_id"`
	Day         string    `gorm:"size:10;not null;uniqueIndex:idx_entry_timetable_slot" json:"day"`
	PeriodNum   int       `gorm:"not null;uniqueIndex:idx_entry_timetable_slot" json:"period_number"`

	StartTime string  `gorm:"size:5;not null" json:"start_time"`
	EndTime   string  `gorm:"size:5;not null" json:"end_time"`
	Subject   string  `gorm:"size:100;not null" json:"subject"`
	TeacherID string  `gorm:"size:64;not null;index" json:"teacher_id"`
	Teacher   string  `gorm:"size:255;not null" json:"teacher"`
	Room      *string `gorm:"size:50" json:"room,omitempty"`
	EntryType string  `gorm:"size:20;not null;default:'regular'" json:"entry_type"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleSuperAdmin = "super_admin"
	RoleSubAdmin   = "sub_admin"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
	RoleParent     = "parent"
)

type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string     `gorm:"size:255;not null" json:"full_name"`
	Email    string     `gorm:"size:255;not null;unique" json:"email"`
	Password string     `gorm:"not null" json:"-"`
	Role     string     `gorm:"size:20;not null;default:'student'" json:"role"`
	SchoolID *uuid.UUID `gorm:"type:uuid;index" json:"school_id"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	School *School `gorm:"foreignkey:SchoolID" json:"school,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

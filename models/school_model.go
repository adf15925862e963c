package models

import (
	"time"

	"github.com/google/uuid"
)

type School struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	Address *string   `gorm:"size:255" json:"address"`
	Phone   *string   `gorm:"size:30" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentPhoto struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	URL           string    `gorm:"size:512;not null" json:"url"`
	ObjectKey     string    `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

const (
	EventTypeDayOff   = "day_off"
	EventTypePersonal = "personal"
)

// CalendarEvent blocks a barber's calendar for display. A nil BarberID
// marks a shop-wide event.
type CalendarEvent struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	BarberID *uint      `gorm:"index" json:"barber_id"`
	Title    string     `gorm:"size:100" json:"title"`
	StartsAt time.Time  `gorm:"not null" json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	Type     string     `gorm:"size:20;not null" json:"type"`

	CreatedAt time.Time `json:"created_at"`
}

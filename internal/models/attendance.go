package models

import "time"

type AttendanceRecord struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	BarberID        uint       `gorm:"not null;index" json:"barber_id"`
	ClockIn         time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut        *time.Time `json:"clock_out"`
	OvertimeMinutes int        `gorm:"default:0" json:"overtime_minutes"`

	CreatedAt time.Time `json:"-"`
}

package models

import "time"

type BarberDetails struct {
	ID       uint `gorm:"primaryKey" json:"-"`
	BarberID uint `gorm:"uniqueIndex;not null" json:"-"`

	Specialty       string `gorm:"size:100" json:"especialidad"`
	ExperienceYears int    `json:"experiencia_anios"`
	Biography       string `gorm:"type:text" json:"biografia"`
	WorkSchedule    string `gorm:"size:255" json:"horario_laboral"`

	UpdatedAt time.Time `json:"-"`
}

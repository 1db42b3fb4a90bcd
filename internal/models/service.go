package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry. Appointments copy its price and duration at
// booking time, so edits here never touch existing appointments.
type Service struct {
	ID          uint            `gorm:"primaryKey" json:"id_servicio"`
	Name        string          `gorm:"size:100;not null" json:"nombre"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio"`
	DurationMin int             `gorm:"not null" json:"duracion_minutos"`
	Active      bool            `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

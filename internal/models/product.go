package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is retail stock sold at the counter (pomades, shampoo...).
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`
	Stock       int             `gorm:"default:0" json:"stock"`
	Category    string          `gorm:"size:50" json:"category"`
	Active      bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

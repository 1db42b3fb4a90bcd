package models

import "time"

type Review struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID uint   `gorm:"not null;index" json:"-"`
	Client   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Text     string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

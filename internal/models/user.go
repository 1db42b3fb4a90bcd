package models

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleBarber Role = "barber"
	RoleClient Role = "client"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name          string `gorm:"size:100;not null" json:"nombre_completo"`
	Email         string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"size:255;not null" json:"-"`
	Phone         string `gorm:"size:20" json:"telefono"`
	Role          Role   `gorm:"size:20;default:'client';index" json:"rol"`
	LoyaltyPoints int    `gorm:"default:0" json:"puntos_fidelidad"`
	PhotoURL      string `gorm:"size:255" json:"foto_perfil_url"`

	BarberDetails *BarberDetails `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barberDetails,omitempty"`

	CreatedAt time.Time `json:"miembro_desde"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) IsBarber() bool {
	return u.Role == RoleBarber
}

package models

type Trend struct {
	ID       uint   `gorm:"primaryKey" json:"id_tendencia"`
	Name     string `gorm:"size:100;not null" json:"nombre"`
	ImageURL string `gorm:"size:512" json:"imagen_url"`
	Active   bool   `gorm:"default:true" json:"-"`
}

package handlers

import (
	"math"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// barberRatings averages client ratings per barber, rounded to one
// decimal. Barbers without ratings are absent from the map.
func barberRatings(db *gorm.DB) (map[uint]float64, error) {
	var rows []struct {
		BarberID uint
		Avg      float64
	}
	if err := db.Model(&models.Appointment{}).
		Select("barber_id, AVG(rating) AS avg").
		Where("rating IS NOT NULL").
		Group("barber_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]float64, len(rows))
	for _, r := range rows {
		out[r.BarberID] = math.Round(r.Avg*10) / 10
	}
	return out, nil
}

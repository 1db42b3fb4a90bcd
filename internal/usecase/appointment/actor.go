package appointment

import (
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   uint
	Role models.Role
}

// canManage reports whether the actor may change ap as staff: its own
// barber, or any admin.
func (a Actor) canManage(ap *models.Appointment) error {
	if a.Role == models.RoleAdmin {
		return nil
	}
	if a.Role == models.RoleBarber && ap.BarberID == a.ID {
		return nil
	}
	return httperr.ErrForbidden("not_your_appointment")
}

package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type RateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RateAppointment {
	return &RateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RateAppointment) Execute(
	ctx context.Context,
	clientID uint,
	appointmentID uuid.UUID,
	rating int,
	comment string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, unavailable(err)
	}

	if ap.ClientID != clientID {
		return nil, httperr.ErrForbidden("not_your_appointment")
	}

	if err := domain.Rate(ap, rating, comment); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, unavailable(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &clientID,
		Action:   audit.ActionAppointmentRated,
		Entity:   "appointment",
		EntityID: ap.ID.String(),
		Metadata: map[string]any{"rating": rating},
	})

	return ap, nil
}

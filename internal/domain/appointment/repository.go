package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Catalog resolves bookable services. Implementations return
// httperr.ErrNotFound("service_not_found") for unknown or inactive ids.
type Catalog interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
}

// Store is the transactional view handed out by Repository.InBarberScope.
// Every call on it runs inside the same transaction.
type Store interface {
	FindOverlapping(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		statuses []Status,
	) ([]models.Appointment, error)

	InsertAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}

type Repository interface {
	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment (create / conflict) --------

	// InBarberScope runs fn in one transaction serialized per barber. A
	// nil return from fn commits; anything else rolls back.
	InBarberScope(
		ctx context.Context,
		barberID uint,
		fn func(Store) error,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AddPhoto(
		ctx context.Context,
		photo *models.AppointmentPhoto,
	) error

	// -------- Reads --------
	ListActiveForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListHistory(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)

	ListBarberEvents(
		ctx context.Context,
		barberID uint,
	) ([]models.CalendarEvent, error)

	ListDayOffs(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.CalendarEvent, error)

	CreateCalendarEvent(
		ctx context.Context,
		ev *models.CalendarEvent,
	) error
}

package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type GetAvailability struct {
	repo    domain.Repository
	catalog domain.Catalog

	openTime  string
	closeTime string
}

func NewGetAvailability(
	repo domain.Repository,
	catalog domain.Catalog,
	openTime string,
	closeTime string,
) *GetAvailability {
	return &GetAvailability{
		repo:      repo,
		catalog:   catalog,
		openTime:  openTime,
		closeTime: closeTime,
	}
}

// Execute lists the free slots of in.Date within shop hours. A day-off
// event on that date yields no slots.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.catalog.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, unavailable(err)
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, unavailable(err)
	}

	openAt, err := timezone.AtClock(in.Date, uc.openTime)
	if err != nil {
		return nil, httperr.ErrUnavailable("store_unavailable", err)
	}
	closeAt, err := timezone.AtClock(in.Date, uc.closeTime)
	if err != nil {
		return nil, httperr.ErrUnavailable("store_unavailable", err)
	}

	dayStart := timezone.StartOfDay(in.Date)
	dayOffs, err := uc.repo.ListDayOffs(ctx, in.BarberID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, unavailable(err)
	}
	if len(dayOffs) > 0 {
		return []domain.TimeSlot{}, nil
	}

	appointments, err := uc.repo.ListActiveForPeriod(ctx, in.BarberID, openAt, closeAt)
	if err != nil {
		return nil, unavailable(err)
	}

	busy := make([]domain.Window, 0, len(appointments))
	for _, ap := range appointments {
		busy = append(busy, domain.Window{
			Start: ap.StartTime.In(in.Date.Location()),
			End:   ap.EndTime.In(in.Date.Location()),
		})
	}

	return domain.FreeSlots(openAt, closeAt, service.DurationMin, busy), nil
}

// DateIn parses a YYYY-MM-DD availability date in loc.
func DateIn(date string, loc *time.Location) (time.Time, error) {
	d, err := timezone.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return d, nil
}

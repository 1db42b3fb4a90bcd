package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	ClientID  uint
	BarberID  uint
	ServiceID uint

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo    domain.Repository
	catalog domain.Catalog
	audit   *audit.Dispatcher
	log     *zap.Logger

	loc        *time.Location
	minAdvance time.Duration
	now        func() time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	catalog domain.Catalog,
	audit *audit.Dispatcher,
	log *zap.Logger,
	loc *time.Location,
	minAdvance time.Duration,
) *BookAppointment {
	return &BookAppointment{
		repo:       repo,
		catalog:    catalog,
		audit:      audit,
		log:        log,
		loc:        loc,
		minAdvance: minAdvance,
		now:        time.Now,
	}
}

// WithClock replaces the wall clock used for the past-date check.
func (uc *BookAppointment) WithClock(now func() time.Time) *BookAppointment {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*dto.BookingDTO, error) {
	started := time.Now()
	defer func() {
		metrics.BookingDuration.Observe(time.Since(started).Seconds())
	}()

	out, err := uc.book(ctx, in)
	switch {
	case err == nil:
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeCreated).Inc()
	case httperr.IsBusiness(err, "time_conflict"):
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
		uc.audit.Dispatch(audit.Event{
			ActorID: &in.ClientID,
			Action:  audit.ActionAppointmentConflict,
			Entity:  "barber",
			Metadata: map[string]any{
				"barber_id":  in.BarberID,
				"service_id": in.ServiceID,
				"date":       in.Date,
				"time":       in.Time,
			},
		})
	case httperr.KindOf(err) == httperr.KindUnavailable:
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		uc.log.Error("booking failed",
			zap.Uint("barber_id", in.BarberID),
			zap.Uint("service_id", in.ServiceID),
			zap.Error(err),
		)
	default:
		metrics.BookingsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
	}
	return out, err
}

func (uc *BookAppointment) book(
	ctx context.Context,
	in BookAppointmentInput,
) (*dto.BookingDTO, error) {

	// --------------------------------------------------
	// 1. Date / time in the shop zone
	// --------------------------------------------------
	if in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	start, err := timezone.ParseDateTime(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if start.Before(uc.now().In(uc.loc).Add(uc.minAdvance)) {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	// --------------------------------------------------
	// 2. Service and barber
	// --------------------------------------------------
	service, err := uc.catalog.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, unavailable(err)
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, unavailable(err)
	}

	window := domain.ComputeWindow(start, service.DurationMin)

	// --------------------------------------------------
	// 3. Conflict check + insert, one transaction
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:        uuid.New(),
		ClientID:  in.ClientID,
		BarberID:  barber.ID,
		ServiceID: service.ID,
		StartTime: window.Start,
		EndTime:   window.End,
		Price:     service.Price,
		Status:    string(domain.InitialStatus()),
	}

	err = uc.repo.InBarberScope(ctx, barber.ID, func(store domain.Store) error {
		overlapping, err := store.FindOverlapping(
			ctx,
			barber.ID,
			window.Start,
			window.End,
			domain.ActiveStatuses,
		)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return httperr.ErrConflict("time_conflict")
		}
		return store.InsertAppointment(ctx, ap)
	})
	if err != nil {
		return nil, unavailable(err)
	}

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.ClientID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: ap.ID.String(),
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"start":     ap.StartTime,
			"end":       ap.EndTime,
		},
	})

	return &dto.BookingDTO{
		AppointmentID: ap.ID,
		Price:         ap.Price,
	}, nil
}

// unavailable passes business errors through and wraps everything else as
// a retryable store failure.
func unavailable(err error) error {
	if httperr.CodeOf(err) != "internal_error" {
		return err
	}
	return httperr.ErrUnavailable("store_unavailable", err)
}

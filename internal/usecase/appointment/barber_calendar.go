package appointment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const dayOffTitle = "Día Franco"

// ======================================================
// LIST
// ======================================================

type ListBarberCalendar struct {
	repo domain.Repository
}

func NewListBarberCalendar(repo domain.Repository) *ListBarberCalendar {
	return &ListBarberCalendar{repo: repo}
}

// Execute merges the barber's active appointments in [from, to) with
// their personal and shop-wide calendar events.
func (uc *ListBarberCalendar) Execute(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]dto.CalendarItemDTO, error) {

	appointments, err := uc.repo.ListActiveForPeriod(ctx, barberID, from, to)
	if err != nil {
		return nil, unavailable(err)
	}

	events, err := uc.repo.ListBarberEvents(ctx, barberID)
	if err != nil {
		return nil, unavailable(err)
	}

	out := make([]dto.CalendarItemDTO, 0, len(appointments)+len(events))
	for _, ap := range appointments {
		end := ap.EndTime
		title := ap.Service.Name
		if ap.Client.Name != "" {
			title += " - " + ap.Client.Name
		}
		out = append(out, dto.CalendarItemDTO{
			ID:     ap.ID.String(),
			Title:  title,
			Start:  ap.StartTime,
			End:    &end,
			Kind:   "appointment",
			Status: ap.Status,
		})
	}

	for _, ev := range events {
		out = append(out, dto.CalendarItemDTO{
			ID:     "event-" + strconv.FormatUint(uint64(ev.ID), 10),
			Title:  ev.Title,
			Start:  ev.StartsAt,
			End:    ev.EndsAt,
			Kind:   ev.Type,
			AllDay: ev.Type == models.EventTypeDayOff,
		})
	}

	return out, nil
}

// ======================================================
// CREATE
// ======================================================

type CreateCalendarEventInput struct {
	BarberID  uint
	Title     string
	Date      string
	Time      string
	EventType string
}

type CreateCalendarEvent struct {
	repo domain.Repository
	loc  *time.Location
	log  *zap.Logger
}

func NewCreateCalendarEvent(
	repo domain.Repository,
	loc *time.Location,
	log *zap.Logger,
) *CreateCalendarEvent {
	return &CreateCalendarEvent{repo: repo, loc: loc, log: log}
}

// Execute stores a calendar block. A day_off covers the whole local day
// and is titled "Día Franco" regardless of the given title.
func (uc *CreateCalendarEvent) Execute(
	ctx context.Context,
	in CreateCalendarEventInput,
) (*models.CalendarEvent, error) {

	day, err := timezone.ParseDate(in.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	barberID := in.BarberID
	ev := &models.CalendarEvent{
		BarberID: &barberID,
		Title:    strings.TrimSpace(in.Title),
	}

	switch in.EventType {
	case models.EventTypeDayOff:
		end := day.AddDate(0, 0, 1)
		ev.Type = models.EventTypeDayOff
		ev.Title = dayOffTitle
		ev.StartsAt = day
		ev.EndsAt = &end
	case "", models.EventTypePersonal:
		ev.Type = models.EventTypePersonal
		ev.StartsAt = day
		if in.Time != "" {
			start, err := timezone.ParseDateTime(in.Date, in.Time, uc.loc)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_date_or_time")
			}
			ev.StartsAt = start
		}
		if ev.Title == "" {
			return nil, httperr.ErrBusiness("invalid_request")
		}
	default:
		return nil, httperr.ErrBusiness("invalid_request")
	}

	if err := uc.repo.CreateCalendarEvent(ctx, ev); err != nil {
		return nil, unavailable(err)
	}

	uc.log.Info("calendar event created",
		zap.Uint("barber_id", in.BarberID),
		zap.String("type", ev.Type),
		zap.Time("starts_at", ev.StartsAt),
	)

	return ev, nil
}

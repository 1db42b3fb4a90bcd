package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// memoryRepo is an in-memory Repository and Catalog. InBarberScope holds a
// per-barber mutex, standing in for the advisory lock.
type memoryRepo struct {
	mu           sync.Mutex
	barberLocks  map[uint]*sync.Mutex
	services     map[uint]*models.Service
	users        map[uint]*models.User
	appointments map[uuid.UUID]*models.Appointment
	events       []models.CalendarEvent
	photos       []models.AppointmentPhoto

	insertErr error
	findErr   error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		barberLocks:  map[uint]*sync.Mutex{},
		services:     map[uint]*models.Service{},
		users:        map[uint]*models.User{},
		appointments: map[uuid.UUID]*models.Appointment{},
	}
}

func (r *memoryRepo) addService(id uint, name string, minutes int, price string) {
	r.services[id] = &models.Service{
		ID:          id,
		Name:        name,
		DurationMin: minutes,
		Price:       decimal.RequireFromString(price),
		Active:      true,
	}
}

func (r *memoryRepo) addUser(id uint, name string, role models.Role) {
	r.users[id] = &models.User{ID: id, Name: name, Role: role}
}

func (r *memoryRepo) seed(ap models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := ap
	r.appointments[ap.ID] = &cp
}

func (r *memoryRepo) active(barberID uint) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && domain.Status(ap.Status).IsActive() {
			out = append(out, *ap)
		}
	}
	return out
}

func (r *memoryRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok || !s.Active {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) GetBarber(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || u.Role != models.RoleBarber {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	return u, nil
}

func (r *memoryRepo) InBarberScope(_ context.Context, barberID uint, fn func(domain.Store) error) error {
	r.mu.Lock()
	lock, ok := r.barberLocks[barberID]
	if !ok {
		lock = &sync.Mutex{}
		r.barberLocks[barberID] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	tx := &memoryTx{repo: r}
	if err := fn(tx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range tx.pending {
		r.appointments[ap.ID] = ap
	}
	return nil
}

type memoryTx struct {
	repo    *memoryRepo
	pending []*models.Appointment
}

func (t *memoryTx) FindOverlapping(_ context.Context, barberID uint, start, end time.Time, statuses []domain.Status) ([]models.Appointment, error) {
	if t.repo.findErr != nil {
		return nil, t.repo.findErr
	}
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	var out []models.Appointment
	for _, ap := range t.repo.appointments {
		if ap.BarberID != barberID || !hasStatus(statuses, domain.Status(ap.Status)) {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (t *memoryTx) InsertAppointment(_ context.Context, ap *models.Appointment) error {
	if t.repo.insertErr != nil {
		return t.repo.insertErr
	}
	cp := *ap
	t.pending = append(t.pending, &cp)
	return nil
}

func hasStatus(list []domain.Status, s domain.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (r *memoryRepo) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	cp := *ap
	return &cp, nil
}

func (r *memoryRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memoryRepo) AddPhoto(_ context.Context, photo *models.AppointmentPhoto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	photo.ID = uint(len(r.photos) + 1)
	r.photos = append(r.photos, *photo)
	return nil
}

func (r *memoryRepo) ListActiveForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.active(barberID) {
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memoryRepo) ListHistory(_ context.Context, clientID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ClientID == clientID && ap.Status == string(domain.StatusCompleted) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (r *memoryRepo) ListBarberEvents(_ context.Context, barberID uint) ([]models.CalendarEvent, error) {
	var out []models.CalendarEvent
	for _, ev := range r.events {
		if ev.BarberID == nil || *ev.BarberID == barberID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListDayOffs(_ context.Context, barberID uint, start, end time.Time) ([]models.CalendarEvent, error) {
	var out []models.CalendarEvent
	for _, ev := range r.events {
		if ev.Type != models.EventTypeDayOff {
			continue
		}
		if ev.BarberID != nil && *ev.BarberID != barberID {
			continue
		}
		if ev.StartsAt.Before(end) && !ev.StartsAt.Before(start) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (r *memoryRepo) CreateCalendarEvent(_ context.Context, ev *models.CalendarEvent) error {
	ev.ID = uint(len(r.events) + 1)
	r.events = append(r.events, *ev)
	return nil
}

var (
	_ domain.Repository = (*memoryRepo)(nil)
	_ domain.Catalog    = (*memoryRepo)(nil)
)

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// bookingLockNamespace occupies the top 16 bits of the advisory lock key;
// the barber id fills the low 48.
const (
	bookingLockNamespace int64 = 0x6262
	barberKeyBits              = 48
)

func bookingLockKey(barberID uint) int64 {
	return bookingLockNamespace<<barberKeyBits | int64(uint64(barberID)&(1<<barberKeyBits-1))
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, string(models.RoleBarber)).
		First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("barber_not_found")
		}
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) InBarberScope(
	ctx context.Context,
	barberID uint,
	fn func(domain.Store) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?)",
			bookingLockKey(barberID),
		).Error; err != nil {
			return err
		}
		return fn(&gormStore{tx: tx})
	})

	switch {
	case httperr.IsExclusionConflict(err):
		return httperr.ErrConflict("time_conflict")
	case httperr.IsSerializationFailure(err):
		return httperr.ErrUnavailable("store_unavailable", err)
	}
	return err
}

type gormStore struct {
	tx *gorm.DB
}

func (s *gormStore) FindOverlapping(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	statuses []domain.Status,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := s.tx.WithContext(ctx).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID,
			domain.StatusStrings(statuses),
			end,
			start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *gormStore) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := s.tx.WithContext(ctx).Omit("Client", "Barber", "Service", "Photos").Create(ap).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrConflict("time_conflict")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(ap).
		Select("Status", "Rating", "RatingComment", "Note", "CompletedAt", "CancelledAt").
		Updates(ap).Error
}

func (r *AppointmentGormRepository) AddPhoto(
	ctx context.Context,
	photo *models.AppointmentPhoto,
) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID,
			domain.StatusStrings(domain.ActiveStatuses),
			end,
			start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListHistory(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("client_id = ? AND status = ?", clientID, string(domain.StatusCompleted)).
		Order("start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListBarberEvents(
	ctx context.Context,
	barberID uint,
) ([]models.CalendarEvent, error) {

	var events []models.CalendarEvent
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? OR barber_id IS NULL", barberID).
		Order("starts_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *AppointmentGormRepository) ListDayOffs(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.CalendarEvent, error) {

	var events []models.CalendarEvent
	if err := r.db.WithContext(ctx).
		Where("type = ?", models.EventTypeDayOff).
		Where("barber_id = ? OR barber_id IS NULL", barberID).
		Where("starts_at < ? AND COALESCE(ends_at, starts_at + interval '1 day') > ?", end, start).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *AppointmentGormRepository) CreateCalendarEvent(
	ctx context.Context,
	ev *models.CalendarEvent,
) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)

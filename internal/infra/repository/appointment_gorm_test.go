package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/db"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/attendance"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// openTestDB connects to TEST_DATABASE_URL or skips the test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

type fixture struct {
	barber  models.User
	client  models.User
	service models.Service
}

func seedFixture(t *testing.T, gdb *gorm.DB) fixture {
	t.Helper()
	suffix := uuid.NewString()[:8]

	f := fixture{
		barber:  models.User{Name: "Barber " + suffix, Email: "barber-" + suffix + "@test.local", PasswordHash: "x", Role: models.RoleBarber},
		client:  models.User{Name: "Client " + suffix, Email: "client-" + suffix + "@test.local", PasswordHash: "x", Role: models.RoleClient},
		service: models.Service{Name: "Corte", DurationMin: 30, Price: decimal.NewFromInt(20), Active: true},
	}
	require.NoError(t, gdb.Create(&f.barber).Error)
	require.NoError(t, gdb.Create(&f.client).Error)
	require.NoError(t, gdb.Create(&f.service).Error)
	return f
}

func newAppointment(f fixture, start time.Time) *models.Appointment {
	return &models.Appointment{
		ID:        uuid.New(),
		ClientID:  f.client.ID,
		BarberID:  f.barber.ID,
		ServiceID: f.service.ID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Price:     f.service.Price,
		Status:    string(domain.StatusConfirmed),
	}
}

func TestAppointmentRepo_ExclusionConstraintMapsToConflict(t *testing.T) {
	gdb := openTestDB(t)
	f := seedFixture(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	start := time.Date(2031, 6, 1, 10, 0, 0, 0, time.UTC)

	insertOnly := func(ap *models.Appointment) error {
		return repo.InBarberScope(context.Background(), f.barber.ID, func(s domain.Store) error {
			return s.InsertAppointment(context.Background(), ap)
		})
	}

	require.NoError(t, insertOnly(newAppointment(f, start)))

	// Skipping the overlap query leaves the constraint as the last guard.
	err := insertOnly(newAppointment(f, start.Add(15*time.Minute)))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	require.NoError(t, insertOnly(newAppointment(f, start.Add(30*time.Minute))))
}

func TestAppointmentRepo_CancelledDoesNotHoldSlot(t *testing.T) {
	gdb := openTestDB(t)
	f := seedFixture(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	start := time.Date(2031, 6, 2, 10, 0, 0, 0, time.UTC)

	first := newAppointment(f, start)
	require.NoError(t, repo.InBarberScope(context.Background(), f.barber.ID, func(s domain.Store) error {
		return s.InsertAppointment(context.Background(), first)
	}))

	require.NoError(t, domain.Cancel(first, time.Now()))
	require.NoError(t, repo.UpdateAppointment(context.Background(), first))

	err := repo.InBarberScope(context.Background(), f.barber.ID, func(s domain.Store) error {
		found, err := s.FindOverlapping(context.Background(), f.barber.ID, start, start.Add(30*time.Minute), domain.ActiveStatuses)
		require.NoError(t, err)
		assert.Empty(t, found)
		return s.InsertAppointment(context.Background(), newAppointment(f, start))
	})
	require.NoError(t, err)
}

func TestAppointmentRepo_ConcurrentScopesSerialize(t *testing.T) {
	gdb := openTestDB(t)
	f := seedFixture(t, gdb)
	repo := NewAppointmentGormRepository(gdb)
	start := time.Date(2031, 6, 3, 10, 0, 0, 0, time.UTC)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.InBarberScope(context.Background(), f.barber.ID, func(s domain.Store) error {
				found, err := s.FindOverlapping(context.Background(), f.barber.ID, start, start.Add(30*time.Minute), domain.ActiveStatuses)
				if err != nil {
					return err
				}
				if len(found) > 0 {
					return httperr.ErrConflict("time_conflict")
				}
				return s.InsertAppointment(context.Background(), newAppointment(f, start))
			})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)

	active, err := repo.ListActiveForPeriod(context.Background(), f.barber.ID, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestAppointmentRepo_NotFoundMapping(t *testing.T) {
	gdb := openTestDB(t)
	f := seedFixture(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	_, err := repo.GetBarber(context.Background(), f.client.ID)
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	_, err = repo.GetAppointment(context.Background(), uuid.New())
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = NewServiceGormRepository(gdb).GetService(context.Background(), 0)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestAppointmentRepo_SerializationFailureIsUnavailable(t *testing.T) {
	gdb := openTestDB(t)
	f := seedFixture(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	err := repo.InBarberScope(context.Background(), f.barber.ID, func(domain.Store) error {
		return &pgconn.PgError{Code: "40001"}
	})

	assert.Equal(t, httperr.KindUnavailable, httperr.KindOf(err))
	assert.Equal(t, "store_unavailable", httperr.CodeOf(err))
}

func TestAttendance_OneOpenShiftPerBarber(t *testing.T) {
	gdb := openTestDB(t)
	f := seedFixture(t, gdb)
	now := time.Now()

	require.NoError(t, gdb.Create(&models.AttendanceRecord{BarberID: f.barber.ID, ClockIn: now}).Error)

	err := gdb.Create(&models.AttendanceRecord{BarberID: f.barber.ID, ClockIn: now.Add(time.Second)}).Error
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(attendance.ClockInError(err), "already_clocked_in"))

	require.NoError(t, gdb.Model(&models.AttendanceRecord{}).
		Where("barber_id = ? AND clock_out IS NULL", f.barber.ID).
		Update("clock_out", now.Add(time.Hour)).Error)
	assert.NoError(t, gdb.Create(&models.AttendanceRecord{BarberID: f.barber.ID, ClockIn: now.Add(2 * time.Hour)}).Error)
}

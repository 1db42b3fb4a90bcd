package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// noOverlapDDL installs the exclusion constraint that makes overlapping
// active appointments for one barber impossible at the storage level.
const noOverlapDDL = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
    ) THEN
        ALTER TABLE appointments
            ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                barber_id WITH =,
                tstzrange(start_time, end_time, '[)') WITH &&
            )
            WHERE (status IN ('pending', 'confirmed'));
    END IF;
END
$$;`

const endAfterStartDDL = `
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint WHERE conname = 'appointments_end_after_start'
    ) THEN
        ALTER TABLE appointments
            ADD CONSTRAINT appointments_end_after_start CHECK (end_time > start_time);
    END IF;
END
$$;`

// oneOpenShiftDDL allows at most one attendance record without clock_out
// per barber.
const oneOpenShiftDDL = `
CREATE UNIQUE INDEX IF NOT EXISTS attendance_one_open_per_barber
    ON attendance_records (barber_id)
    WHERE clock_out IS NULL;`

// Open connects, tunes the pool and migrates the schema.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready",
		zap.Int("max_open_conns", 10),
	)
	return db, nil
}

// Migrate is idempotent and safe to run on every start.
func Migrate(db *gorm.DB) error {
	db = db.Session(&gorm.Session{PrepareStmt: false})

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.BarberDetails{},
		&models.Service{},
		&models.Appointment{},
		&models.AppointmentPhoto{},
		&models.CalendarEvent{},
		&models.AttendanceRecord{},
		&models.Trend{},
		&models.Review{},
		&models.Product{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, ddl := range []string{endAfterStartDDL, noOverlapDDL, oneOpenShiftDDL} {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

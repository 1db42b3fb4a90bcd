package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/attendance"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// AttendanceHandler serves clock-in/out and the month-to-date
// performance summary of the calling barber.
type AttendanceHandler struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewAttendanceHandler(db *gorm.DB, loc *time.Location) *AttendanceHandler {
	return &AttendanceHandler{db: db, loc: loc, now: time.Now}
}

func (h *AttendanceHandler) openRecord(tx *gorm.DB, barberID uint) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := tx.
		Where("barber_id = ? AND clock_out IS NULL", barberID).
		Order("clock_in DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	barberID := middleware.UserID(c)
	var rec models.AttendanceRecord

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		open, err := h.openRecord(tx, barberID)
		if err != nil {
			return err
		}
		if open != nil {
			return httperr.ErrConflict("already_clocked_in")
		}

		rec = models.AttendanceRecord{BarberID: barberID, ClockIn: h.now()}
		return tx.Create(&rec).Error
	})
	if err != nil {
		err = attendance.ClockInError(err)
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	barberID := middleware.UserID(c)
	var rec *models.AttendanceRecord

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		open, err := h.openRecord(tx, barberID)
		if err != nil {
			return err
		}
		if err := attendance.ClockOut(open, h.now()); err != nil {
			return err
		}
		rec = open
		return tx.Model(open).Select("ClockOut", "OvertimeMinutes").Updates(open).Error
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *AttendanceHandler) Performance(c *gin.Context) {
	barberID := middleware.UserID(c)
	ctx := c.Request.Context()
	monthStart := timezone.StartOfMonth(h.now().In(h.loc))

	var records []models.AttendanceRecord
	if err := h.db.WithContext(ctx).
		Where("barber_id = ? AND clock_in >= ?", barberID, monthStart).
		Order("clock_in ASC").
		Find(&records).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	var served struct {
		Count   int
		Revenue decimal.Decimal
	}
	if err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(price), 0) AS revenue").
		Where("barber_id = ? AND status = ? AND start_time >= ?", barberID, string(domain.StatusCompleted), monthStart).
		Scan(&served).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendance.Summarize(records, h.loc, served.Count, served.Revenue))
}

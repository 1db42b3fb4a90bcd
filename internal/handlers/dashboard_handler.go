package handlers

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const lowStockThreshold = 5

type DashboardHandler struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewDashboardHandler(db *gorm.DB, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{db: db, loc: loc, now: time.Now}
}

type TodayAppointmentDTO struct {
	ID      uuid.UUID `json:"id"`
	Time    string    `json:"hora"`
	Client  string    `json:"cliente"`
	Barber  string    `json:"barbero"`
	Service string    `json:"servicio"`
}

type DashboardBarberDTO struct {
	ID     uint    `json:"id"`
	Name   string  `json:"nombre"`
	Rating float64 `json:"rating"`
}

type DashboardDTO struct {
	IncomeToday       decimal.Decimal       `json:"ingresos_hoy"`
	CompletedToday    int64                 `json:"turnos_completados_hoy"`
	NewClientsMonth   int64                 `json:"clientes_nuevos_mes"`
	AverageRating     float64               `json:"satisfaccion_promedio"`
	LowStockProducts  []models.Product      `json:"productos_stock_bajo"`
	TodayAppointments []TodayAppointmentDTO `json:"turnos_hoy"`
	Barbers           []DashboardBarberDTO  `json:"barberos"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())
	now := h.now().In(h.loc)
	dayStart := timezone.StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthStart := timezone.StartOfMonth(now)

	var out DashboardDTO

	var income struct {
		Count int64
		Total decimal.Decimal
	}
	if err := db.Model(&models.Appointment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(price), 0) AS total").
		Where("status = ? AND start_time >= ? AND start_time < ?", string(domain.StatusCompleted), dayStart, dayEnd).
		Scan(&income).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	out.IncomeToday = income.Total
	out.CompletedToday = income.Count

	if err := db.Model(&models.User{}).
		Where("role = ? AND created_at >= ?", string(models.RoleClient), monthStart).
		Count(&out.NewClientsMonth).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	var avg struct{ Avg *float64 }
	if err := db.Model(&models.Appointment{}).
		Select("AVG(rating) AS avg").
		Where("rating IS NOT NULL").
		Scan(&avg).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if avg.Avg != nil {
		out.AverageRating = math.Round(*avg.Avg*10) / 10
	}

	out.LowStockProducts = []models.Product{}
	if err := db.Where("active = ? AND stock < ?", true, lowStockThreshold).
		Order("stock ASC").
		Find(&out.LowStockProducts).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	var today []models.Appointment
	if err := db.Preload("Client").Preload("Barber").Preload("Service").
		Where("status = ? AND start_time >= ? AND start_time < ?", string(domain.StatusConfirmed), dayStart, dayEnd).
		Order("start_time ASC").
		Find(&today).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	out.TodayAppointments = make([]TodayAppointmentDTO, 0, len(today))
	for _, ap := range today {
		out.TodayAppointments = append(out.TodayAppointments, TodayAppointmentDTO{
			ID:      ap.ID,
			Time:    ap.StartTime.In(h.loc).Format(timezone.ClockLayout),
			Client:  ap.Client.Name,
			Barber:  ap.Barber.Name,
			Service: ap.Service.Name,
		})
	}

	var barbers []models.User
	if err := db.Where("role = ?", string(models.RoleBarber)).Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	ratings, err := barberRatings(db)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	out.Barbers = make([]DashboardBarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out.Barbers = append(out.Barbers, DashboardBarberDTO{ID: b.ID, Name: b.Name, Rating: ratings[b.ID]})
	}

	httpresp.OK(c, out)
}

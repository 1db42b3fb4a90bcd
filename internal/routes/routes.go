package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// Deps are the process-wide collaborators built in main.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         *zap.Logger
	Location    *time.Location
	Catalog     *cache.Catalog
	Audit       *audit.Dispatcher
	RateLimiter *middleware.RateLimiter
	PhotoStore  ucAppointment.PhotoStore
	Encoder     ucAppointment.ImageEncoder
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.Logger(d.Log),
		middleware.CORSMiddleware(cfg.CORSOrigin),
	)

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	minAdvance := time.Duration(cfg.MinAdvanceMinutes) * time.Minute

	appointmentUC := handlers.AppointmentUseCases{
		Book: ucAppointment.NewBookAppointment(
			appointmentRepo, d.Catalog, d.Audit, d.Log, d.Location, minAdvance,
		),
		Availability: ucAppointment.NewGetAvailability(
			appointmentRepo, d.Catalog, cfg.ShopOpenTime, cfg.ShopCloseTime,
		),
		Complete:    ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit),
		Cancel:      ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit),
		Rate:        ucAppointment.NewRateAppointment(appointmentRepo, d.Audit),
		History:     ucAppointment.NewListHistory(appointmentRepo),
		Calendar:    ucAppointment.NewListBarberCalendar(appointmentRepo),
		CreateEvent: ucAppointment.NewCreateCalendarEvent(appointmentRepo, d.Location, d.Log),
		AttachPhoto: ucAppointment.NewAttachPhoto(appointmentRepo, d.PhotoStore, d.Encoder),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg, validators.NewEmailDomainChecker(nil, 3*time.Second))
	meHandler := handlers.NewMeHandler(d.DB)
	catalogHandler := handlers.NewCatalogHandler(d.DB, d.Catalog)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC, d.Location)
	attendanceHandler := handlers.NewAttendanceHandler(d.DB, d.Location)
	dashboardHandler := handlers.NewDashboardHandler(d.DB, d.Location)
	serviceAdminHandler := handlers.NewServiceAdminHandler(d.DB, d.Catalog, d.Audit)
	productHandler := handlers.NewProductHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Location)
	healthHandler := handlers.NewHealthHandler(d.DB)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Get)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	auth := middleware.AuthMiddleware(cfg)

	// ------------------------------
	// AUTH
	// ------------------------------
	authAPI := api.Group("/auth")
	{
		authAPI.POST("/register", authHandler.Register)
		authAPI.POST("/login", authHandler.Login)
		authAPI.POST("/logout", authHandler.Logout)
	}

	// ------------------------------
	// BOOKING
	// ------------------------------
	api.POST("/turnos", auth, d.RateLimiter.Middleware(), appointmentHandler.Book)

	// ------------------------------
	// CATALOG (public)
	// ------------------------------
	catalog := api.Group("/user")
	{
		catalog.GET("/tendencias", catalogHandler.Trends)
		catalog.GET("/servicios", catalogHandler.Services)
		catalog.GET("/barberos", catalogHandler.Barbers)
		catalog.GET("/comments", catalogHandler.Comments)
	}

	// ------------------------------
	// CLIENT
	// ------------------------------
	user := api.Group("/user", auth)
	{
		user.GET("/perfil", meHandler.GetProfile)
		user.PUT("/perfil", meHandler.UpdateProfile)
		user.POST("/comments", middleware.RequireRoles(models.RoleClient), catalogHandler.CreateComment)
		user.GET("/historial", appointmentHandler.History)
		user.GET("/turnos/availability", appointmentHandler.Availability)
		user.POST("/turnos/:id/rating", appointmentHandler.Rate)
	}

	// ------------------------------
	// BARBER
	// ------------------------------
	barber := api.Group("/barber", auth, middleware.RequireRoles(models.RoleBarber, models.RoleAdmin))
	{
		barber.GET("/events", appointmentHandler.Events)
		barber.POST("/events", appointmentHandler.CreateEvent)
		barber.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		barber.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		barber.POST("/appointments/:id/photos", appointmentHandler.UploadPhoto)
		barber.GET("/performance", attendanceHandler.Performance)
		barber.POST("/clock-in", attendanceHandler.ClockIn)
		barber.POST("/clock-out", attendanceHandler.ClockOut)
	}

	// ------------------------------
	// ADMIN
	// ------------------------------
	admin := api.Group("/admin", auth, middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/dashboard", dashboardHandler.Get)
		admin.GET("/audit-logs", auditLogsHandler.List)
		admin.POST("/servicios", serviceAdminHandler.Create)
		admin.PATCH("/servicios/:id", serviceAdminHandler.Update)
		admin.GET("/productos", productHandler.List)
		admin.POST("/productos", productHandler.Create)
		admin.PATCH("/productos/:id", productHandler.Update)
	}
}

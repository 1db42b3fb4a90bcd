package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// CatalogInvalidator drops cached catalog entries after a write.
type CatalogInvalidator interface {
	InvalidateServices(ctx context.Context, ids ...uint)
}

// ServiceAdminHandler maintains the service catalog. Appointments keep
// their price snapshot, so edits only affect future bookings.
type ServiceAdminHandler struct {
	db    *gorm.DB
	cache CatalogInvalidator
	audit *audit.Dispatcher
}

func NewServiceAdminHandler(db *gorm.DB, cache CatalogInvalidator, dispatcher *audit.Dispatcher) *ServiceAdminHandler {
	return &ServiceAdminHandler{db: db, cache: cache, audit: dispatcher}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string          `json:"nombre" binding:"required"`
	Price       decimal.Decimal `json:"precio"`
	DurationMin int             `json:"duracion_minutos" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"nombre,omitempty"`
	Price       *decimal.Decimal `json:"precio,omitempty"`
	DurationMin *int             `json:"duracion_minutos,omitempty" binding:"omitempty,min=1"`
	Active      *bool            `json:"activo,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceAdminHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo.")
		return
	}

	service := models.Service{
		Name:        req.Name,
		Price:       req.Price.Round(2),
		DurationMin: req.DurationMin,
		Active:      true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.cache.InvalidateServices(c.Request.Context())
	c.JSON(http.StatusCreated, service)
}

func (h *ServiceAdminHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.FromError(c, httperr.ErrNotFound("service_not_found"))
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.FromError(c, httperr.ErrNotFound("service_not_found"))
			return
		}
		httperr.FromError(c, err)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_price", "El precio no puede ser negativo.")
			return
		}
		service.Price = req.Price.Round(2)
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	h.cache.InvalidateServices(c.Request.Context(), service.ID)

	actorID := middleware.UserID(c)
	h.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   audit.ActionServiceUpdated,
		Entity:   "service",
		EntityID: strconv.FormatUint(uint64(service.ID), 10),
		Metadata: req,
	})

	c.JSON(http.StatusOK, service)
}

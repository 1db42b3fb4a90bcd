package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateProfileRequest struct {
	Name     *string `json:"nombre_completo,omitempty"`
	Phone    *string `json:"telefono,omitempty"`
	PhotoURL *string `json:"foto_perfil_url,omitempty"`

	// Barber only.
	Specialty       *string `json:"especialidad,omitempty"`
	ExperienceYears *int    `json:"experiencia_anios,omitempty" binding:"omitempty,min=0"`
	Biography       *string `json:"biografia,omitempty"`
	WorkSchedule    *string `json:"horario_laboral,omitempty"`
}

func (h *MeHandler) load(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := h.db.Preload("BarberDetails").First(&user, middleware.UserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
			return nil, false
		}
		httperr.FromError(c, err)
		return nil, false
	}
	return &user, true
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies the given fields. For barbers the details row is
// created on first update.
func (h *MeHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, ok := h.load(c)
	if !ok {
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Select("Name", "Phone", "PhotoURL").Updates(user).Error; err != nil {
			return err
		}

		if !user.IsBarber() {
			return nil
		}

		details := user.BarberDetails
		if details == nil {
			details = &models.BarberDetails{BarberID: user.ID}
		}
		if req.Specialty != nil {
			details.Specialty = *req.Specialty
		}
		if req.ExperienceYears != nil {
			details.ExperienceYears = *req.ExperienceYears
		}
		if req.Biography != nil {
			details.Biography = *req.Biography
		}
		if req.WorkSchedule != nil {
			details.WorkSchedule = *req.WorkSchedule
		}
		user.BarberDetails = details
		return tx.Save(details).Error
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

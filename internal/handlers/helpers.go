package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

func actorFrom(c *gin.Context) ucAppointment.Actor {
	return ucAppointment.Actor{
		ID:   middleware.UserID(c),
		Role: middleware.UserRole(c),
	}
}

// appointmentIDParam writes a 404 and returns false when :id is not a
// UUID.
func appointmentIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.FromError(c, httperr.ErrNotFound("appointment_not_found"))
		return uuid.Nil, false
	}
	return id, true
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"message":    "Datos inválidos.",
		"details":    err.Error(),
	})
}

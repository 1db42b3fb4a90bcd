package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// messages holds the user-facing text for known business codes.
var messages = map[string]string{
	"invalid_request":       "Datos inválidos.",
	"invalid_date_or_time":  "Fecha u hora inválida.",
	"date_in_past":          "No se puede reservar un turno en el pasado.",
	"service_not_found":     "Servicio no encontrado.",
	"barber_not_found":      "Barbero no encontrado.",
	"time_conflict":         "El barbero no está disponible en ese horario.",
	"appointment_not_found": "Turno no encontrado.",
	"invalid_state":         "El turno no admite esa operación.",
	"invalid_rating":        "La calificación debe estar entre 1 y 5.",
	"already_rated":         "El turno ya fue calificado.",
	"not_your_appointment":  "El turno no pertenece al usuario.",
	"invalid_image":         "La imagen no es válida.",
	"photos_disabled":       "El almacenamiento de fotos no está configurado.",
	"already_clocked_in":    "Ya tienes una entrada activa.",
	"not_clocked_in":        "No tienes una entrada activa para marcar salida.",
	"store_unavailable":     "Error interno del servidor.",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// FromError writes err using its business kind for the status code.
func FromError(c *gin.Context, err error) {
	code := CodeOf(err)
	msg, ok := messages[code]
	if !ok {
		msg = messages["store_unavailable"]
	}
	if StatusOf(err) == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Write(c, StatusOf(err), code, msg)
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

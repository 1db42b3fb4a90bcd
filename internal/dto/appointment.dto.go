package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingDTO struct {
	AppointmentID uuid.UUID       `json:"appointmentId"`
	Price         decimal.Decimal `json:"price"`
}

type AppointmentListDTO struct {
	ID          uuid.UUID `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
}

type HistoryItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"fecha"`
	ServiceName string          `json:"servicio"`
	BarberName  string          `json:"barbero"`
	Price       decimal.Decimal `json:"precio"`
	Rating      *int            `json:"rating"`
	Comment     string          `json:"comentario,omitempty"`
	Note        string          `json:"notas"`
	Photos      []string        `json:"fotos"`
}

// CalendarItemDTO is one entry on a barber's calendar: either an
// appointment or a calendar event.
type CalendarItemDTO struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Start  time.Time  `json:"start"`
	End    *time.Time `json:"end"`
	Kind   string     `json:"kind"`
	Status string     `json:"status,omitempty"`
	AllDay bool       `json:"allDay"`
}

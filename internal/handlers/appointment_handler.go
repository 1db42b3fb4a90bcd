package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book         *ucAppointment.BookAppointment
	availability *ucAppointment.GetAvailability
	complete     *ucAppointment.CompleteAppointment
	cancel       *ucAppointment.CancelAppointment
	rate         *ucAppointment.RateAppointment
	history      *ucAppointment.ListHistory
	calendar     *ucAppointment.ListBarberCalendar
	createEvent  *ucAppointment.CreateCalendarEvent
	attachPhoto  *ucAppointment.AttachPhoto

	loc *time.Location
}

type AppointmentUseCases struct {
	Book         *ucAppointment.BookAppointment
	Availability *ucAppointment.GetAvailability
	Complete     *ucAppointment.CompleteAppointment
	Cancel       *ucAppointment.CancelAppointment
	Rate         *ucAppointment.RateAppointment
	History      *ucAppointment.ListHistory
	Calendar     *ucAppointment.ListBarberCalendar
	CreateEvent  *ucAppointment.CreateCalendarEvent
	AttachPhoto  *ucAppointment.AttachPhoto
}

func NewAppointmentHandler(uc AppointmentUseCases, loc *time.Location) *AppointmentHandler {
	return &AppointmentHandler{
		book:         uc.Book,
		availability: uc.Availability,
		complete:     uc.Complete,
		cancel:       uc.Cancel,
		rate:         uc.Rate,
		history:      uc.History,
		calendar:     uc.Calendar,
		createEvent:  uc.CreateEvent,
		attachPhoto:  uc.AttachPhoto,
		loc:          loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	BarberID  uint   `json:"barberId" binding:"required"`
	ServiceID uint   `json:"serviceId" binding:"required"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

type CompleteAppointmentRequest struct {
	Note string `json:"note"`
}

type RateAppointmentRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

type CreateEventRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time"`
	EventType string `json:"eventType"`
}

// ======================================================
// CLIENT
// ======================================================

// Book handles POST /api/turnos.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	out, err := h.book.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		ClientID:  middleware.UserID(c),
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID, err1 := strconv.ParseUint(c.Query("barberId"), 10, 64)
	serviceID, err2 := strconv.ParseUint(c.Query("serviceId"), 10, 64)
	if err1 != nil || err2 != nil {
		httperr.FromError(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	date, err := ucAppointment.DateIn(c.Query("date"), h.loc)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  uint(barberID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format(timezone.DateLayout),
		"slots": slots,
	})
}

func (h *AppointmentHandler) History(c *gin.Context) {
	items, err := h.history.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AppointmentHandler) Rate(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	var req RateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.rate.Execute(c.Request.Context(), middleware.UserID(c), id, req.Rating, req.Comment)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// BARBER
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}
	}

	ap, err := h.complete.Execute(c.Request.Context(), actorFrom(c), id, req.Note)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) UploadPhoto(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.FromError(c, httperr.ErrBusiness("invalid_image"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.FromError(c, httperr.ErrBusiness("invalid_image"))
		return
	}
	defer f.Close()

	photo, err := h.attachPhoto.Execute(c.Request.Context(), actorFrom(c), id, f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// Events lists the barber's calendar. Without from/to it covers the
// current month and the next two.
func (h *AppointmentHandler) Events(c *gin.Context) {
	from := timezone.StartOfMonth(time.Now().In(h.loc))
	to := from.AddDate(0, 3, 0)

	if v := c.Query("from"); v != "" {
		d, err := timezone.ParseDate(v, h.loc)
		if err != nil {
			httperr.FromError(c, httperr.ErrBusiness("invalid_date_or_time"))
			return
		}
		from = d
	}
	if v := c.Query("to"); v != "" {
		d, err := timezone.ParseDate(v, h.loc)
		if err != nil {
			httperr.FromError(c, httperr.ErrBusiness("invalid_date_or_time"))
			return
		}
		to = d.AddDate(0, 0, 1)
	}

	items, err := h.calendar.Execute(c.Request.Context(), middleware.UserID(c), from, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *AppointmentHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ev, err := h.createEvent.Execute(c.Request.Context(), ucAppointment.CreateCalendarEventInput{
		BarberID:  middleware.UserID(c),
		Title:     req.Title,
		Date:      req.Date,
		Time:      req.Time,
		EventType: req.EventType,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ev)
}

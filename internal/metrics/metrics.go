package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Booking
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barbershop_bookings_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"outcome"},
	)

	BookingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "barbershop_booking_duration_seconds",
			Help:    "Time spent in the booking transaction",
			Buckets: prometheus.DefBuckets,
		},
	)

	AppointmentTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barbershop_appointment_transitions_total",
			Help: "Appointment state changes",
		},
		[]string{"status"},
	)

	// HTTP
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barbershop_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)

	// Cache
	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barbershop_catalog_cache_total",
			Help: "Catalog cache lookups by result",
		},
		[]string{"result"},
	)
)

const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

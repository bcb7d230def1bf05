package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lodge",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by room type.",
		},
		[]string{"room_type"},
	)

	bookingExtended = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lodge",
			Name:      "booking_extended_total",
			Help:      "Count of stays extended into a new cycle.",
		},
	)

	bookingCheckedOut = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lodge",
			Name:      "booking_checked_out_total",
			Help:      "Count of checkouts by variant (immediate or retroactive).",
		},
		[]string{"variant"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingExtended, bookingCheckedOut)
	})
}

func IncBookingCreated(roomType string) {
	bookingCreated.WithLabelValues(roomType).Inc()
}

func IncBookingExtended() {
	bookingExtended.Inc()
}

func IncBookingCheckedOut(variant string) {
	bookingCheckedOut.WithLabelValues(variant).Inc()
}

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total bookings created",
		},
	)

	PaymentVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Total payment verification attempts by result",
		},
		[]string{"result"},
	)

	CheckIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkins_total",
			Help: "Total successful ticket check-ins",
		},
	)
)

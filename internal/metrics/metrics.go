package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driveshare_booking_requests_total",
		Help: "Booking requests accepted and persisted.",
	})

	BookingConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "driveshare_booking_conflicts_total",
		Help: "Booking requests refused because the dates were unavailable.",
	})

	BookingDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driveshare_booking_decisions_total",
		Help: "Host and renter decisions on bookings, by resulting status.",
	}, []string{"status"})

	CarReviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driveshare_car_reviews_total",
		Help: "Admin decisions on car listings, by resulting status.",
	}, []string{"status"})

	ScheduledTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "driveshare_scheduled_transitions_total",
		Help: "Bookings moved by scheduled jobs, by resulting status.",
	}, []string{"status"})
)

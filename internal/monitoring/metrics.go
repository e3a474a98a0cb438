// Package monitoring exposes Prometheus metrics for the booking
// workflow.  Metrics are registered on the default registry and served
// through the /metrics endpoint.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total booking operations by outcome and resulting status",
		},
		[]string{"outcome", "status"},
	)

	bookingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booking_duration_seconds",
			Help:    "Duration of booking operations including the transaction",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)

	capacityInconsistencies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "capacity_inconsistencies_total",
			Help: "Times a cruise was observed with negative seat headroom",
		},
	)
)

// BookingRecorded counts a completed booking and observes its latency.
func BookingRecorded(created bool, status string, elapsed time.Duration) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	bookingsTotal.WithLabelValues(outcome, status).Inc()
	bookingDuration.Observe(elapsed.Seconds())
}

// CapacityInconsistencyObserved counts an over-sold cruise sighting.
func CapacityInconsistencyObserved() {
	capacityInconsistencies.Inc()
}

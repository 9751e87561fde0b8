package utils

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// BidTransitions counts bid state changes by resulting status.
	BidTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chairbid_bid_transitions_total",
			Help: "Bid state transitions, labelled by resulting status.",
		},
		[]string{"status"},
	)

	// BookingsCreated counts bookings by source.
	BookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chairbid_bookings_created_total",
			Help: "Bookings created, labelled by source (fixed_price or auction).",
		},
		[]string{"source"},
	)

	// StepFailures counts best-effort steps that failed and were only logged.
	StepFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chairbid_best_effort_step_failures_total",
			Help: "Best-effort workflow steps that failed and were not rolled back.",
		},
		[]string{"step"},
	)

	// AuctionsClosed counts auctions closed by the scheduler.
	AuctionsClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chairbid_auctions_closed_total",
		Help: "Auctions closed after their end time.",
	})
)

func init() {
	prometheus.MustRegister(BidTransitions, BookingsCreated, StepFailures, AuctionsClosed)
}

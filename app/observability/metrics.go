package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for FeedOperations.
const (
	OutcomeApplied  = "applied"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	// FeedOperations counts store operations by name and outcome.
	FeedOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postfeed_operations_total",
		Help: "Total number of post store operations by operation and outcome",
	}, []string{"operation", "outcome"})

	// ProjectionResults records how many posts each projection returned.
	ProjectionResults = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postfeed_projection_results",
		Help:    "Number of posts returned by a feed projection",
		Buckets: prometheus.ExponentialBuckets(1, 4, 6),
	}, []string{"sort"})
)

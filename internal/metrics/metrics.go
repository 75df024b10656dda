package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/retry"
)

var (
	// AttemptsTotal counts settled attempts per operation and outcome
	AttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flashbooth_attempts_total",
			Help: "Total number of enhancement attempts",
		},
		[]string{"operation", "outcome"},
	)

	// RetriesTotal counts failed attempts that were followed by another attempt
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flashbooth_retries_total",
			Help: "Total number of enhancement retries",
		},
		[]string{"operation", "kind"},
	)

	// AttemptDuration tracks the latency of single attempts
	AttemptDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flashbooth_attempt_duration_seconds",
			Help:    "Enhancement attempt latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
)

// ObserveAttempt returns an attempt hook for retry.Executor.WithOnAttempt that
// records every settled attempt of operation.
func ObserveAttempt(operation string) func(retry.AttemptRecord) {
	return func(rec retry.AttemptRecord) {
		outcome := OutcomeSuccess
		if rec.Err != nil {
			outcome = rec.Kind.String()
		}
		AttemptsTotal.WithLabelValues(operation, outcome).Inc()
		AttemptDuration.WithLabelValues(operation).Observe(rec.Duration.Seconds())
	}
}

// ObserveRetry returns a hook for retry.Executor.WithOnRetry that counts
// retries of operation by the kind of the failure that caused them.
func ObserveRetry(operation string) func(attempt int, err error, delay time.Duration) {
	return func(_ int, err error, _ time.Duration) {
		kind := retry.KindTransient
		var classified *retry.ClassifiedError
		if errors.As(err, &classified) {
			kind = classified.Kind
		}
		RetriesTotal.WithLabelValues(operation, kind.String()).Inc()
	}
}

// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntakeSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Financials submissions by outcome",
		},
		[]string{"outcome"},
	)

	IntakeSubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intake_submission_duration_seconds",
			Help:    "Duration of the upstream financials submission in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	IntakeValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_validation_errors_total",
			Help: "Field validation errors reported to the form",
		},
		[]string{"field"},
	)

	LookupRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_requests_total",
			Help: "Lookup list loads by list and source",
		},
		[]string{"list", "source"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Inbound HTTP requests by route pattern and status",
		},
		[]string{"route", "status"},
	)
)

// Submission outcomes.
const (
	OutcomeSubmitted = "submitted"
	OutcomeInvalid   = "invalid"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// RecordValidationErrors counts one error per field.
func RecordValidationErrors(fieldErrors map[string]string) {
	for field := range fieldErrors {
		IntakeValidationErrors.WithLabelValues(field).Inc()
	}
}

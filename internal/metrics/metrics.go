// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Estimation metrics
	EstimatesTotal      *prometheus.CounterVec
	EstimateInputErrors *prometheus.CounterVec

	// Lead metrics
	LeadsTotal          *prometheus.CounterVec
	LeadForwardDuration prometheus.Histogram

	// Localization metrics
	LocalizationsTotal *prometheus.CounterVec

	// Auth metrics
	AuthAttemptsTotal *prometheus.CounterVec
}

// NewCollector creates a new metrics collector registered on the
// default registry.
func NewCollector(namespace string) *Collector {
	return &Collector{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method, and status",
			},
			[]string{"route", "method", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"route"},
		),

		EstimatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimates_total",
				Help:      "Total number of estimates computed by calculator kind",
			},
			[]string{"kind"},
		),

		EstimateInputErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimate_input_errors_total",
				Help:      "Total number of rejected estimate inputs by calculator kind",
			},
			[]string{"kind"},
		),

		LeadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "leads_total",
				Help:      "Total number of lead submissions by category and outcome",
			},
			[]string{"category", "outcome"},
		),

		LeadForwardDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "lead_forward_duration_seconds",
				Help:      "Duration of lead delivery to the external endpoint in seconds",
				Buckets:   []float64{0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10},
			},
		),

		LocalizationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "localizations_total",
				Help:      "Total number of ZIP localizations by resolution source",
			},
			[]string{"source"},
		),

		AuthAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of auth operations by kind and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}
}

// ObserveHTTPRequest records one finished HTTP request.
func (c *Collector) ObserveHTTPRequest(route, method, status string, duration time.Duration) {
	c.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	c.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordLead records one lead submission outcome. Outcomes are
// "forwarded", "validation_failed", "forward_failed", and
// "unconfigured".
func (c *Collector) RecordLead(category, outcome string) {
	c.LeadsTotal.WithLabelValues(category, outcome).Inc()
}

// RecordEstimate records one computed estimate.
func (c *Collector) RecordEstimate(kind string) {
	c.EstimatesTotal.WithLabelValues(kind).Inc()
}

// RecordEstimateInputError records one rejected estimate input.
func (c *Collector) RecordEstimateInputError(kind string) {
	c.EstimateInputErrors.WithLabelValues(kind).Inc()
}

// RecordAuthAttempt records one auth operation outcome.
func (c *Collector) RecordAuthAttempt(operation, outcome string) {
	c.AuthAttemptsTotal.WithLabelValues(operation, outcome).Inc()
}

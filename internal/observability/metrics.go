package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment service.
type Metrics struct {
	AssessmentsTotal   prometheus.Counter
	AssessmentErrors   prometheus.Counter
	AssessmentDuration prometheus.Histogram
	PublishErrors      prometheus.Counter

	// Upstream provider metrics.
	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,error}
	ProviderDuration *prometheus.HistogramVec // labels: provider
	ProviderEnabled  *prometheus.GaugeVec     // labels: provider
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "risk_engine",
			Name:      "assessments_total",
			Help:      "Total risk assessments produced.",
		}),
		AssessmentErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "risk_engine",
			Name:      "assessment_errors_total",
			Help:      "Total assessment requests that failed outright.",
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "risk_engine",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete fetch-score-respond cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "risk_engine",
			Name:      "publish_errors_total",
			Help:      "Total failures publishing assessments to Kafka.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "risk_engine",
			Name:      "provider_requests_total",
			Help:      "Upstream provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "risk_engine",
			Name:      "provider_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		ProviderEnabled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "risk_engine",
			Name:      "provider_enabled",
			Help:      "1 when the labeled provider integration is enabled.",
		}, []string{"provider"}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentErrors,
		m.AssessmentDuration,
		m.PublishErrors,
		m.ProviderRequests,
		m.ProviderDuration,
		m.ProviderEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "risk_engine", Name: "assessments_total"}),
		AssessmentErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "risk_engine", Name: "assessment_errors_total"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "risk_engine", Name: "assessment_duration_seconds"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "risk_engine", Name: "publish_errors_total"}),
		ProviderRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "risk_engine", Name: "provider_requests_total"}, []string{"provider", "outcome"}),
		ProviderDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "risk_engine", Name: "provider_duration_seconds"}, []string{"provider"}),
		ProviderEnabled:    prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "risk_engine", Name: "provider_enabled"}, []string{"provider"}),
	}
}

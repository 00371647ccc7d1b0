package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// advisory service.
type Metrics struct {
	AssessmentsTotal    *prometheus.CounterVec // labels: outcome={ok,not_found,upstream_error}
	AssessmentDuration  prometheus.Histogram
	RiskTierTotal       *prometheus.CounterVec // labels: tier
	AlertBumps          prometheus.Counter
	SeverityOverrides   prometheus.Counter
	AlertLookupFailures prometheus.Counter

	// Upstream call metrics.
	UpstreamRequests     *prometheus.CounterVec   // labels: service={geocode,elevation,rainfall,alerts}, outcome={success,error}
	UpstreamDuration     *prometheus.HistogramVec // labels: service
	AdviceRequests       *prometheus.CounterVec   // labels: outcome={success,error}
	AssessmentsPublished prometheus.Counter
	PublisherEnabled     prometheus.Gauge
	AdviceEnabled        prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.RiskTierTotal,
		m.AlertBumps,
		m.SeverityOverrides,
		m.AlertLookupFailures,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.AdviceRequests,
		m.AssessmentsPublished,
		m.PublisherEnabled,
		m.AdviceEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaalert",
			Name:      "assessments_total",
			Help:      "Completed risk assessments by outcome.",
		}, []string{"outcome"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aquaalert",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete geocode-classify-fuse assessment.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		}),
		RiskTierTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaalert",
			Name:      "risk_tier_total",
			Help:      "Final risk tiers returned to clients.",
		}, []string{"tier"}),
		AlertBumps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aquaalert",
			Name:      "alert_bumps_total",
			Help:      "Assessments escalated by live flood alerts.",
		}),
		SeverityOverrides: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aquaalert",
			Name:      "severity_overrides_total",
			Help:      "Assessments forced to High by a severe or extreme alert.",
		}),
		AlertLookupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aquaalert",
			Name:      "alert_lookup_failures_total",
			Help:      "Alert lookups that failed and were treated as empty.",
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaalert",
			Name:      "upstream_requests_total",
			Help:      "Upstream provider requests by service and outcome.",
		}, []string{"service", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aquaalert",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"service"}),
		AdviceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaalert",
			Name:      "advice_requests_total",
			Help:      "OpenAI advice generations by outcome.",
		}, []string{"outcome"}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aquaalert",
			Name:      "assessments_published_total",
			Help:      "Assessments published to the Kafka advisory topic.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aquaalert",
			Name:      "publisher_enabled",
			Help:      "1 when Kafka advisory publishing is enabled, 0 otherwise.",
		}),
		AdviceEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aquaalert",
			Name:      "advice_enabled",
			Help:      "1 when the OpenAI advice endpoint is enabled, 0 otherwise.",
		}),
	}
}

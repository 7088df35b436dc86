package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for both scrape paths.
type Metrics struct {
	Registry       *prometheus.Registry
	AttemptsTotal  *prometheus.CounterVec
	RetriesTotal   *prometheus.CounterVec
	OutcomesTotal  *prometheus.CounterVec
	ScrapeDuration *prometheus.HistogramVec
	ReviewsSampled prometheus.Counter
}

// NewMetrics constructs and registers all collectors on a dedicated
// registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	attempts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_attempts_total",
			Help: "Total scrape attempts by path.",
		},
		[]string{"path"},
	)
	retries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_retries_total",
			Help: "Total retry attempts scheduled by path.",
		},
		[]string{"path"},
	)
	outcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_outcomes_total",
			Help: "Terminal scrape outcomes by path and status.",
		},
		[]string{"path", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scraper_duration_seconds",
			Help:    "End-to-end scrape duration by path.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
	sampled := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_reviews_sampled_total",
			Help: "Total review records returned after sampling.",
		},
	)

	registry.MustRegister(attempts, retries, outcomes, duration, sampled)

	return &Metrics{
		Registry:       registry,
		AttemptsTotal:  attempts,
		RetriesTotal:   retries,
		OutcomesTotal:  outcomes,
		ScrapeDuration: duration,
		ReviewsSampled: sampled,
	}
}

func (m *Metrics) IncAttempt(path string) {
	if m == nil {
		return
	}
	m.AttemptsTotal.WithLabelValues(path).Inc()
}

func (m *Metrics) IncRetry(path string) {
	if m == nil {
		return
	}
	m.RetriesTotal.WithLabelValues(path).Inc()
}

func (m *Metrics) IncOutcome(path, status string) {
	if m == nil {
		return
	}
	m.OutcomesTotal.WithLabelValues(path, status).Inc()
}

func (m *Metrics) ObserveDuration(path string, d time.Duration) {
	if m == nil {
		return
	}
	m.ScrapeDuration.WithLabelValues(path).Observe(d.Seconds())
}

func (m *Metrics) AddSampled(n int) {
	if m == nil {
		return
	}
	m.ReviewsSampled.Add(float64(n))
}

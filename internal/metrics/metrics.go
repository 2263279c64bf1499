// Package metrics exports battery activity as Prometheus metrics
package metrics

import (
	"net/http"
	"time"

	domain "gouniform/domain/uniformity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several servers can coexist in one process
type Metrics struct {
	registry *prometheus.Registry
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
	samples  prometheus.Histogram
}

// New creates and registers the uniformity metrics
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gouniform_test_outcomes_total",
				Help: "Uniformity test executions by test and verdict",
			},
			[]string{"test", "verdict"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gouniform_test_duration_seconds",
				Help:    "Time spent executing a single uniformity test",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"test"},
		),
		samples: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gouniform_sample_size",
				Help:    "Number of values handed to the battery",
				Buckets: prometheus.ExponentialBuckets(10, 10, 6),
			},
		),
	}
	m.registry.MustRegister(m.outcomes, m.duration, m.samples)
	return m
}

// RecordOutcome satisfies ports.OutcomeRecorderPort
func (m *Metrics) RecordOutcome(test domain.TestName, verdict domain.Verdict, elapsed time.Duration) {
	m.outcomes.WithLabelValues(string(test), string(verdict)).Inc()
	m.duration.WithLabelValues(string(test)).Observe(elapsed.Seconds())
}

// RecordSample satisfies ports.OutcomeRecorderPort
func (m *Metrics) RecordSample(size int) {
	m.samples.Observe(float64(size))
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

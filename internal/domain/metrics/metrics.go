// Package metrics exposes Prometheus collectors for the conversion path.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "unitai"

// Metrics holds the custom collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	Conversions        *prometheus.CounterVec
	ConversionDuration prometheus.Histogram
	ProviderErrors     *prometheus.CounterVec
}

// New registers all collectors on a fresh registry, plus the Go and process
// collectors. A private registry keeps tests free of duplicate-registration panics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversion submissions by category and outcome.",
		}, []string{"category", "outcome"}),

		// Remote calls only; rejected submissions never reach the model.
		ConversionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Latency of the remote model call.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),

		ProviderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_errors_total",
			Help:      "Failed model calls by provider.",
		}, []string{"provider"}),
	}
}

// ObserveConversion records one submission.
func (m *Metrics) ObserveConversion(category, outcome string, d time.Duration) {
	if category == "" {
		category = "none"
	}
	m.Conversions.WithLabelValues(category, outcome).Inc()
	if d > 0 {
		m.ConversionDuration.Observe(d.Seconds())
	}
}

// ObserveProviderError records a failed model call.
func (m *Metrics) ObserveProviderError(provider string) {
	m.ProviderErrors.WithLabelValues(provider).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

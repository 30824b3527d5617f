package metrics

import (
	"parsonlabs/assistant/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks calls to the chat-completion API.
//
// Metrics:
//   - <ns>_<sub>_upstream_latency_seconds: time to response headers
//   - <ns>_<sub>_upstream_errors_total{status_code}
type UpstreamMetrics struct {
	latency     prometheus.Histogram
	errorsTotal *prometheus.CounterVec
}

// NewUpstreamMetrics creates and registers upstream metrics with the provided registry.
func NewUpstreamMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_latency_seconds",
				Help:      "Time from sending the upstream request to receiving response headers",
				Buckets:   cfg.RequestDurationBuckets,
			},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "upstream_errors_total",
				Help:      "Total number of failed upstream calls by upstream status code",
			},
			[]string{"status_code"},
		),
	}

	registry.MustRegister(um.latency, um.errorsTotal)

	return um
}

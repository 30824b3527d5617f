package metrics

import (
	"parsonlabs/assistant/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RelayMetrics tracks inbound requests and the streams relayed to callers.
//
// Metrics:
//   - <ns>_<sub>_requests_total{status}
//   - <ns>_<sub>_request_duration_seconds
//   - <ns>_<sub>_prompt_bytes
//   - <ns>_<sub>_stream_chunks_total
//   - <ns>_<sub>_stream_bytes_total
//   - <ns>_<sub>_inflight_streams
type RelayMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	promptBytes     prometheus.Histogram
	chunksTotal     prometheus.Counter
	bytesTotal      prometheus.Counter
	inflight        prometheus.Gauge
}

// NewRelayMetrics creates and registers relay metrics with the provided registry.
func NewRelayMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RelayMetrics {
	rm := &RelayMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of chat requests by outcome",
			},
			[]string{"status"},
		),

		requestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of chat requests including the relayed stream",
				Buckets:   cfg.RequestDurationBuckets,
			},
		),

		promptBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "prompt_bytes",
				Help:      "Size of accepted prompts in bytes",
				Buckets:   prometheus.ExponentialBuckets(16, 4, 8), // 16B to 256KB
			},
		),

		chunksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "stream_chunks_total",
				Help:      "Total number of chunks relayed to callers",
			},
		),

		bytesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "stream_bytes_total",
				Help:      "Total number of bytes relayed to callers",
			},
		),

		inflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "inflight_streams",
				Help:      "Number of streams currently being relayed",
			},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.promptBytes,
		rm.chunksTotal,
		rm.bytesTotal,
		rm.inflight,
	)

	return rm
}

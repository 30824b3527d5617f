package metrics

import (
	"strconv"
	"time"

	"parsonlabs/assistant/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns the relay's Prometheus registry and metric families.
//
// A nil *Collector is valid and records nothing, so callers do not need to
// check whether metrics are enabled.
type Collector struct {
	registry *prometheus.Registry

	relay    *RelayMetrics
	upstream *UpstreamMetrics
}

// NewCollector creates a collector and registers every metric with registry.
// If registry is nil, a fresh registry with Go runtime and process
// collectors is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	opts := *cfg
	if opts.Namespace == "" {
		opts.Namespace = config.DefaultMetricsNamespace
	}
	if opts.Subsystem == "" {
		opts.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(opts.RequestDurationBuckets) == 0 {
		opts.RequestDurationBuckets = config.DefaultRequestDurationBuckets
	}

	return &Collector{
		registry: registry,
		relay:    NewRelayMetrics(&opts, registry),
		upstream: NewUpstreamMetrics(&opts, registry),
	}
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordRequest records a finished /chat request.
//
// status is one of success, validation_error, upstream_error,
// internal_error, or client_disconnect.
func (c *Collector) RecordRequest(status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.relay.requestsTotal.WithLabelValues(status).Inc()
	c.relay.requestDuration.Observe(duration.Seconds())
}

// RecordPrompt records the size of an accepted prompt.
func (c *Collector) RecordPrompt(bytes int) {
	if c == nil {
		return
	}
	c.relay.promptBytes.Observe(float64(bytes))
}

// RecordChunk records one relayed chunk of n bytes.
func (c *Collector) RecordChunk(n int) {
	if c == nil {
		return
	}
	c.relay.chunksTotal.Inc()
	c.relay.bytesTotal.Add(float64(n))
}

// StreamStarted increments the in-flight stream gauge. Call StreamEnded
// when the stream finishes.
func (c *Collector) StreamStarted() {
	if c == nil {
		return
	}
	c.relay.inflight.Inc()
}

// StreamEnded decrements the in-flight stream gauge.
func (c *Collector) StreamEnded() {
	if c == nil {
		return
	}
	c.relay.inflight.Dec()
}

// RecordUpstreamLatency records the time until upstream response headers.
func (c *Collector) RecordUpstreamLatency(latency time.Duration) {
	if c == nil {
		return
	}
	c.upstream.latency.Observe(latency.Seconds())
}

// RecordUpstreamError records a failed upstream call. statusCode is the
// upstream HTTP status, or 0 when no response was received.
func (c *Collector) RecordUpstreamError(statusCode int) {
	if c == nil {
		return
	}
	label := "none"
	if statusCode > 0 {
		label = strconv.Itoa(statusCode)
	}
	c.upstream.errorsTotal.WithLabelValues(label).Inc()
}

// Package metrics exposes Prometheus metrics for the chat relay.
//
// The Collector registers request, stream and upstream metric families in a
// dedicated registry and serves them through Handler:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// Metric names are prefixed with the configured namespace and subsystem,
// "assistant_relay_" by default.
package metrics

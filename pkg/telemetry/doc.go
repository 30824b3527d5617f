// Package telemetry groups the relay's observability packages.
//
//   - logging: slog logger construction with credential masking
//   - metrics: Prometheus collector and /metrics handler
//   - tracing: OpenTelemetry tracer, samplers and W3C propagation
package telemetry

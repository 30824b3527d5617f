// Package tracing configures OpenTelemetry for the relay.
//
// When telemetry.tracing.enabled is set, spans are exported over OTLP/gRPC
// and W3C trace context is propagated: Middleware continues traces from
// callers, and the upstream client injects traceparent into its outbound
// request. Sampling is "always", "never", or "ratio", each parent-based.
package tracing

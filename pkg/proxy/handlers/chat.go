package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"parsonlabs/assistant/pkg/proxy"
	"parsonlabs/assistant/pkg/proxy/middleware"
	"parsonlabs/assistant/pkg/telemetry/metrics"
	"parsonlabs/assistant/pkg/telemetry/tracing"
	"parsonlabs/assistant/pkg/upstream"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ChatHandler serves POST /chat: it forwards the prompt upstream and relays
// the upstream event stream back to the caller unchanged.
type ChatHandler struct {
	Upstream     Streamer
	Metrics      *metrics.Collector
	MaxBodyBytes int64
	Logger       *slog.Logger
}

// NewChatHandler creates a new chat handler. A nil collector disables
// metrics and a nil logger uses slog.Default().
func NewChatHandler(up Streamer, collector *metrics.Collector, maxBodyBytes int64, logger *slog.Logger) *ChatHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = proxy.DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatHandler{
		Upstream:     up,
		Metrics:      collector,
		MaxBodyBytes: maxBodyBytes,
		Logger:       logger,
	}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	startTime := middleware.GetStartTime(ctx)
	if startTime.IsZero() {
		startTime = time.Now()
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		if err := proxy.WriteJSONResponse(w, http.StatusMethodNotAllowed, &proxy.ErrorResponse{
			Detail: "Method " + r.Method + " not allowed. Use POST instead.",
		}); err != nil {
			h.Logger.ErrorContext(ctx, "failed to write error response", "error", err)
		}
		return
	}

	chatReq, err := proxy.ParseChatRequest(r, h.MaxBodyBytes)
	if err != nil {
		h.fail(w, r, err, startTime)
		return
	}
	h.Metrics.RecordPrompt(len(chatReq.Prompt))

	stream, err := h.Upstream.Stream(ctx, chatReq.Prompt)
	if err != nil {
		var serr *upstream.StatusError
		if errors.As(err, &serr) {
			h.Metrics.RecordUpstreamError(serr.StatusCode)
		} else if ctx.Err() == nil {
			h.Metrics.RecordUpstreamError(0)
		}
		h.fail(w, r, err, startTime)
		return
	}
	defer stream.Close()

	h.Metrics.RecordUpstreamLatency(stream.Latency)

	proxy.SetSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	h.Metrics.StreamStarted()
	stats, err := proxy.Relay(w, stream, h.Metrics.RecordChunk)
	h.Metrics.StreamEnded()

	if err != nil && ctx.Err() != nil {
		// The caller went away; the upstream read fails as a consequence.
		err = ctx.Err()
	}
	outcome := proxy.Classify(err)
	latency := time.Since(startTime)
	h.Metrics.RecordRequest(string(outcome), latency)
	markSpan(ctx, outcome, err)

	attrs := []any{
		"request_id", requestID,
		"trace_id", tracing.TraceID(ctx),
		"outcome", string(outcome),
		"chunks", stats.Chunks,
		"bytes", stats.Bytes,
		"upstream_latency_ms", stream.Latency.Milliseconds(),
		"total_latency_ms", latency.Milliseconds(),
	}
	switch outcome {
	case proxy.OutcomeSuccess:
		h.Logger.InfoContext(ctx, "stream relayed", attrs...)
	case proxy.OutcomeClientDisconnect:
		h.Logger.WarnContext(ctx, "client disconnected during streaming", append(attrs, "error", err)...)
	default:
		// Headers are already sent, so the status cannot change.
		h.Logger.ErrorContext(ctx, "stream ended with error", append(attrs, "error", err)...)
	}
}

// fail logs, counts and writes a pre-stream error.
func (h *ChatHandler) fail(w http.ResponseWriter, r *http.Request, err error, startTime time.Time) {
	ctx := r.Context()
	outcome := proxy.Classify(err)

	status, werr := proxy.WriteErrorResponse(w, err)
	h.Metrics.RecordRequest(string(outcome), time.Since(startTime))
	markSpan(ctx, outcome, err)

	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"status", status,
		"outcome", string(outcome),
		"error", err,
	}
	switch outcome {
	case proxy.OutcomeValidationError, proxy.OutcomeClientDisconnect:
		h.Logger.WarnContext(ctx, "chat request rejected", attrs...)
	default:
		h.Logger.ErrorContext(ctx, "chat request failed", attrs...)
	}

	if werr != nil {
		h.Logger.ErrorContext(ctx, "failed to write error response", "error", werr)
	}
}

// markSpan records the outcome on the request's server span.
func markSpan(ctx context.Context, outcome proxy.Outcome, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("relay.outcome", string(outcome)))
	tracing.SetStatus(span, err)
}

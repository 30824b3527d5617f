package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// MaxErrorBodyBytes caps how much of a non-200 upstream body is read.
const MaxErrorBodyBytes = 64 << 10

const tracerName = "parsonlabs/assistant/pkg/upstream"

var errHeaderTimeout = errors.New("upstream header timeout")

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the outbound request body. Field order is the wire
// order.
type CompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// NewCompletionRequest builds the single-message streaming request for prompt.
func NewCompletionRequest(model, prompt string) CompletionRequest {
	return CompletionRequest{
		Model:    model,
		Messages: []Message{{Role: "user", Content: prompt}},
		Stream:   true,
	}
}

// Encode returns the JSON body. HTML characters are not escaped so the
// prompt reaches the upstream as written.
func (r CompletionRequest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Options configures the shared HTTP transport.
type Options struct {
	// MaxIdleConns is the keep-alive pool size. Zero selects 100.
	MaxIdleConns int

	// Transport replaces the default transport. Tests use it.
	Transport http.RoundTripper

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client streams completions from the upstream API.
type Client struct {
	settings atomic.Pointer[Settings]
	http     *http.Client
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewClient creates a client using settings.
func NewClient(settings Settings, opts Options) *Client {
	rt := opts.Transport
	if rt == nil {
		maxIdle := opts.MaxIdleConns
		if maxIdle <= 0 {
			maxIdle = 100
		}
		rt = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        maxIdle,
			MaxIdleConnsPerHost: maxIdle,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		// No client-level timeout: it would cut off long generations.
		http:   &http.Client{Transport: rt},
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	c.settings.Store(&settings)
	return c
}

// Settings returns the current settings snapshot.
func (c *Client) Settings() Settings {
	return *c.settings.Load()
}

// SetSettings replaces the settings used by subsequent calls.
func (c *Client) SetSettings(s Settings) {
	c.settings.Store(&s)
}

// Stream is an open upstream response with status 200.
type Stream struct {
	// Header is the upstream response header.
	Header http.Header

	// Latency is the time from sending the request to receiving headers.
	Latency time.Duration

	body   io.ReadCloser
	cancel context.CancelFunc
	span   trace.Span
}

// Read reads the next chunk of the upstream body.
func (s *Stream) Read(p []byte) (int, error) {
	return s.body.Read(p)
}

// Close releases the upstream connection and ends the call's span.
func (s *Stream) Close() error {
	err := s.body.Close()
	s.cancel()
	s.span.End()
	return err
}

// Stream sends prompt upstream and returns the open body on status 200.
// Any other status yields a *StatusError; a failure to get a response
// yields a *TransportError. Cancelling ctx aborts the call and any stream
// it returned.
func (c *Client) Stream(ctx context.Context, prompt string) (*Stream, error) {
	s := c.Settings()

	body, err := NewCompletionRequest(s.Model, prompt).Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode upstream request: %w", err)
	}

	ctx, span := c.tracer.Start(ctx, "upstream.chat_completion",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", http.MethodPost),
			attribute.String("http.url", s.URL),
			attribute.String("llm.model", s.Model),
		),
	)

	ctx, cancel := context.WithCancelCause(ctx)
	fail := func(err error) (*Stream, error) {
		cancel(nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fail(fmt.Errorf("failed to create upstream request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	c.logger.DebugContext(ctx, "sending request upstream",
		"url", s.URL,
		"model", s.Model,
		"prompt_bytes", len(prompt),
	)

	// The timer covers connect and headers only and is disarmed below.
	timer := time.AfterFunc(s.Timeout, func() { cancel(errHeaderTimeout) })
	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	timer.Stop()

	if errors.Is(context.Cause(ctx), errHeaderTimeout) {
		if resp != nil {
			resp.Body.Close()
		}
		return fail(&TransportError{URL: s.URL, Timeout: s.Timeout, Cause: context.DeadlineExceeded})
	}
	if err != nil {
		return fail(&TransportError{URL: s.URL, Cause: err})
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		data, rerr := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodyBytes))
		resp.Body.Close()
		if rerr != nil {
			c.logger.DebugContext(ctx, "failed to read upstream error body",
				"status", resp.StatusCode,
				"read_bytes", len(data),
				"error", rerr,
			)
		}
		return fail(&StatusError{StatusCode: resp.StatusCode, Body: string(data)})
	}

	return &Stream{
		Header:  resp.Header,
		Latency: latency,
		body:    resp.Body,
		cancel:  func() { cancel(nil) },
		span:    span,
	}, nil
}

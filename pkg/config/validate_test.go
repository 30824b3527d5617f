package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty listen address", func(c *Config) { c.Proxy.ListenAddress = "" }, "proxy.listen_address"},
		{"listen address without port", func(c *Config) { c.Proxy.ListenAddress = "localhost" }, "proxy.listen_address"},
		{"negative read timeout", func(c *Config) { c.Proxy.ReadTimeout = -time.Second }, "proxy.read_timeout"},
		{"negative write timeout", func(c *Config) { c.Proxy.WriteTimeout = -time.Second }, "proxy.write_timeout"},
		{"huge header limit", func(c *Config) { c.Proxy.MaxHeaderBytes = 11 * 1024 * 1024 }, "proxy.max_header_bytes"},
		{"negative body limit", func(c *Config) { c.Proxy.MaxBodyBytes = -1 }, "proxy.max_body_bytes"},
		{"relative url", func(c *Config) { c.Upstream.URL = "/v1/chat/completions" }, "upstream.url"},
		{"unsupported scheme", func(c *Config) { c.Upstream.URL = "ws://example.com/chat" }, "upstream.url"},
		{"blank model", func(c *Config) { c.Upstream.Model = "  " }, "upstream.model"},
		{"zero timeout", func(c *Config) { c.Upstream.Timeout = 0 }, "upstream.timeout"},
		{"unknown log level", func(c *Config) { c.Telemetry.Logging.Level = "trace" }, "telemetry.logging.level"},
		{"unknown log format", func(c *Config) { c.Telemetry.Logging.Format = "xml" }, "telemetry.logging.format"},
		{"metrics path without slash", func(c *Config) { c.Telemetry.Metrics.Path = "metrics" }, "telemetry.metrics.path"},
		{"unknown sampler", func(c *Config) { c.Telemetry.Tracing.Sampler = "sometimes" }, "telemetry.tracing.sampler"},
		{"ratio above one", func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 }, "telemetry.tracing.sample_ratio"},
		{"tracing without endpoint", func(c *Config) {
			c.Telemetry.Tracing.Enabled = true
			c.Telemetry.Tracing.Endpoint = ""
		}, "telemetry.tracing.endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if !verr.HasField(tt.field) {
				t.Errorf("expected error on %s, got %v", tt.field, verr.Errors)
			}
		})
	}
}

func TestValidate_MetricsDisabledSkipsPath(t *testing.T) {
	cfg := NewDefaultConfig()
	disabled := false
	cfg.Telemetry.Metrics.Enabled = &disabled
	cfg.Telemetry.Metrics.Path = ""

	if err := Validate(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "upstream.model", Message: "model is required"}}}
	if got := single.Error(); got != "configuration validation failed: upstream.model: model is required" {
		t.Errorf("unexpected message %q", got)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "x"},
		{Field: "b", Message: "y"},
	}}
	if got := multi.Error(); !strings.Contains(got, "2 errors") || !strings.Contains(got, "  - b: y") {
		t.Errorf("unexpected message %q", got)
	}

	if got := (ValidationError{}).Error(); got != "configuration validation failed" {
		t.Errorf("unexpected message %q", got)
	}
}

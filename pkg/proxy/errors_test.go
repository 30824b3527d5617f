package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"parsonlabs/assistant/pkg/upstream"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "validation",
			err:        &ValidationError{Message: MsgPromptRequired, Code: CodeMissingPrompt},
			wantStatus: http.StatusBadRequest,
			wantDetail: "Prompt is required",
		},
		{
			name:       "oversize body",
			err:        &ValidationError{Message: "too big", Code: CodeRequestTooLarge, Status: http.StatusRequestEntityTooLarge},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantDetail: "too big",
		},
		{
			name:       "upstream status",
			err:        &upstream.StatusError{StatusCode: http.StatusServiceUnavailable, Body: `{"error":"overloaded"}`},
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: `Upstream API Error: {"error":"overloaded"}`,
		},
		{
			name:       "wrapped upstream status",
			err:        fmt.Errorf("call failed: %w", &upstream.StatusError{StatusCode: 429, Body: "slow down"}),
			wantStatus: http.StatusTooManyRequests,
			wantDetail: "Upstream API Error: slow down",
		},
		{
			name:       "transport",
			err:        &upstream.TransportError{URL: "http://x", Cause: errors.New("connection refused")},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Internal Server Error: upstream http://x: connection refused",
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Internal Server Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := HandleError(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if resp.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", resp.Detail, tt.wantDetail)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeSuccess},
		{&ValidationError{Message: "x"}, OutcomeValidationError},
		{&upstream.StatusError{StatusCode: 500}, OutcomeUpstreamError},
		{&WriteError{Cause: errors.New("broken pipe")}, OutcomeClientDisconnect},
		{&upstream.TransportError{URL: "u", Cause: context.Canceled}, OutcomeClientDisconnect},
		{&upstream.TransportError{URL: "u", Cause: errors.New("refused")}, OutcomeInternalError},
		{errors.New("boom"), OutcomeInternalError},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

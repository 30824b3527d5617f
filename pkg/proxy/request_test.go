package proxy

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseChatRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		maxBytes   int64
		wantPrompt string
		wantStatus int // 0 for success, -1 for a non-validation error
		wantDetail string
	}{
		{name: "valid", body: `{"prompt":"hello"}`, wantPrompt: "hello"},
		{name: "whitespace preserved", body: `{"prompt":"  hi  "}`, wantPrompt: "  hi  "},
		{name: "unicode", body: `{"prompt":"héllo 世界"}`, wantPrompt: "héllo 世界"},
		{name: "extra fields ignored", body: `{"prompt":"x","model":"other"}`, wantPrompt: "x"},
		{name: "missing prompt", body: `{}`, wantStatus: http.StatusBadRequest, wantDetail: MsgPromptRequired},
		{name: "null prompt", body: `{"prompt":null}`, wantStatus: http.StatusBadRequest, wantDetail: MsgPromptRequired},
		{name: "empty prompt", body: `{"prompt":""}`, wantStatus: http.StatusBadRequest, wantDetail: MsgPromptRequired},
		{name: "numeric prompt", body: `{"prompt":42}`, wantStatus: http.StatusBadRequest, wantDetail: MsgPromptType},
		{name: "false prompt", body: `{"prompt":false}`, wantStatus: http.StatusBadRequest, wantDetail: MsgPromptType},
		{name: "zero prompt", body: `{"prompt":0}`, wantStatus: http.StatusBadRequest, wantDetail: MsgPromptType},
		{name: "object prompt", body: `{"prompt":{"text":"hi"}}`, wantStatus: http.StatusBadRequest, wantDetail: MsgPromptType},
		{name: "too large", body: `{"prompt":"` + strings.Repeat("a", 64) + `"}`, maxBytes: 32, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "invalid json", body: `{"prompt":`, wantStatus: -1},
		{name: "empty body", body: ``, wantStatus: -1},
		{name: "array body", body: `["hello"]`, wantStatus: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body))

			got, err := ParseChatRequest(req, tt.maxBytes)

			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Prompt != tt.wantPrompt {
					t.Errorf("prompt = %q, want %q", got.Prompt, tt.wantPrompt)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error")
			}

			var verr *ValidationError
			isValidation := errors.As(err, &verr)

			if tt.wantStatus == -1 {
				if isValidation {
					t.Errorf("expected non-validation error, got %v", verr)
				}
				return
			}

			if !isValidation {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.HTTPStatus() != tt.wantStatus {
				t.Errorf("status = %d, want %d", verr.HTTPStatus(), tt.wantStatus)
			}
			if tt.wantDetail != "" && verr.Message != tt.wantDetail {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantDetail)
			}
		})
	}
}

func TestParseChatRequest_ExactLimitAccepted(t *testing.T) {
	body := `{"prompt":"abc"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))

	if _, err := ParseChatRequest(req, int64(len(body))); err != nil {
		t.Errorf("body at the limit should be accepted: %v", err)
	}
}

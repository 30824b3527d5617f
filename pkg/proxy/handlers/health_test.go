package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"parsonlabs/assistant/pkg/upstream"
)

type staticSettings upstream.Settings

func (s staticSettings) Settings() upstream.Settings { return upstream.Settings(s) }

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
	if _, ok := body["timestamp"]; !ok {
		t.Error("expected timestamp")
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST, got %d", w.Code)
	}
}

func TestReadyHandler(t *testing.T) {
	configured := staticSettings{URL: "http://upstream.test/v1/chat/completions", Model: testModel}

	tests := []struct {
		name       string
		settings   staticSettings
		draining   bool
		wantStatus int
		wantState  string
	}{
		{"ready", configured, false, http.StatusOK, "ready"},
		{"draining", configured, true, http.StatusServiceUnavailable, "not_ready"},
		{"unconfigured", staticSettings{}, false, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReadyHandler(tt.settings)
			h.SetDraining(tt.draining)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			var body struct {
				Status   string            `json:"status"`
				Upstream map[string]string `json:"upstream"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Status != tt.wantState {
				t.Errorf("status = %q, want %q", body.Status, tt.wantState)
			}
			if tt.wantStatus == http.StatusOK && body.Upstream["model"] != testModel {
				t.Errorf("upstream model = %q", body.Upstream["model"])
			}
		})
	}
}

func TestReadyHandler_FollowsSettingsSwap(t *testing.T) {
	client := upstream.NewClient(upstream.Settings{URL: "http://a.test", Model: "m1"}, upstream.Options{})
	h := NewReadyHandler(client)

	client.SetSettings(upstream.Settings{URL: "http://b.test", Model: "m2"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	var body struct {
		Upstream map[string]string `json:"upstream"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Upstream["url"] != "http://b.test" || body.Upstream["model"] != "m2" {
		t.Errorf("expected swapped settings, got %v", body.Upstream)
	}
}

package handlers

import (
	"net/http"
	"sync/atomic"
	"time"

	"parsonlabs/assistant/pkg/proxy"
)

// HealthHandler handles health check requests for liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_ = proxy.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// ReadyHandler handles readiness check requests. The service is ready when
// upstream settings are loaded and it is not shutting down. The upstream
// itself is not probed.
type ReadyHandler struct {
	Settings SettingsSource

	draining atomic.Bool
}

// NewReadyHandler creates a new readiness check handler.
func NewReadyHandler(src SettingsSource) *ReadyHandler {
	return &ReadyHandler{Settings: src}
}

// SetDraining marks the service as shutting down so probes fail.
func (h *ReadyHandler) SetDraining(draining bool) {
	h.draining.Store(draining)
}

// ServeHTTP implements http.Handler for readiness checks.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.draining.Load() {
		_ = proxy.WriteJSONResponse(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not_ready",
			"reason": "shutting down",
		})
		return
	}

	s := h.Settings.Settings()
	if s.URL == "" || s.Model == "" {
		_ = proxy.WriteJSONResponse(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not_ready",
			"reason": "upstream not configured",
		})
		return
	}

	_ = proxy.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"upstream": map[string]string{
			"url":   s.URL,
			"model": s.Model,
		},
		"timestamp": time.Now().Unix(),
	})
}

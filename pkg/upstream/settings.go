package upstream

import (
	"time"

	"parsonlabs/assistant/pkg/config"
)

// Settings are the per-call parameters of the upstream API.
type Settings struct {
	// URL is the chat-completions endpoint.
	URL string

	// Model is sent as the "model" field of every request.
	Model string

	// Timeout bounds connect plus response headers.
	Timeout time.Duration

	// APIKey is sent as a bearer token when non-empty.
	APIKey string
}

// SettingsFromConfig validates cfg and converts it to Settings.
func SettingsFromConfig(cfg *config.UpstreamConfig) (Settings, error) {
	if errs := config.ValidateUpstream(cfg); len(errs) > 0 {
		return Settings{}, config.ValidationError{Errors: errs}
	}
	return Settings{
		URL:     cfg.URL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
		APIKey:  cfg.APIKey,
	}, nil
}

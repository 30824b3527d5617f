package handlers

import (
	"context"

	"parsonlabs/assistant/pkg/upstream"
)

// Streamer opens one upstream chat-completion stream per call.
// *upstream.Client implements it.
type Streamer interface {
	Stream(ctx context.Context, prompt string) (*upstream.Stream, error)
}

// SettingsSource reports the upstream settings currently in effect.
type SettingsSource interface {
	Settings() upstream.Settings
}

// Package logging builds the process logger from telemetry.logging.
//
// Logs are written with log/slog as JSON (default) or text. Attributes whose
// keys look like credentials (api_key, authorization, token) are masked
// before they reach the handler.
package logging

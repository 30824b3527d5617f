// Package config provides configuration management for the assistant relay.
//
// Configuration is read from a YAML file, completed with defaults, then
// overridden from the environment and validated:
//
//	cfg, fromFile, err := config.Load("config.yaml", false)
//
// When the file is missing and was not requested explicitly, Load falls
// back to NewDefaultConfig.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention ASSISTANT_SECTION_FIELD.
// For example:
//
//   - ASSISTANT_PROXY_LISTEN_ADDRESS overrides proxy.listen_address
//   - ASSISTANT_UPSTREAM_MODEL overrides upstream.model
//   - ASSISTANT_UPSTREAM_API_KEY overrides upstream.api_key
//   - ASSISTANT_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Hot Reload
//
// FileWatcher watches the config file with fsnotify and debounces bursts of
// writes. The server uses it to swap upstream settings when
// upstream.watch is enabled; other sections require a restart.
package config

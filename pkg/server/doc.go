// Package server provides the HTTP server of the chat relay.
//
// The server ties the relay components together (handlers, middleware,
// telemetry) and manages the listener lifecycle.
//
// # Basic Usage
//
//	cfg := config.GetConfig()
//
//	settings, err := upstream.SettingsFromConfig(&cfg.Upstream)
//	if err != nil {
//	    return err
//	}
//	client := upstream.NewClient(settings, upstream.Options{
//	    MaxIdleConns: cfg.Upstream.MaxIdleConns,
//	})
//
//	srv := server.NewServer(cfg, server.Deps{Upstream: client})
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until ctx is cancelled. Cancelling ctx (for example from a
// SIGTERM handler) triggers graceful shutdown:
//  1. /ready starts answering 503
//  2. The config watcher stops
//  3. The listener closes and in-flight streams get up to
//     proxy.shutdown_timeout to finish
//
// # Routes
//
//   - POST /chat - Relay a prompt and stream the upstream response
//   - GET /health - Liveness probe (always returns 200)
//   - GET /ready - Readiness probe (503 while draining)
//   - GET /metrics - Prometheus metrics (path from telemetry.metrics.path)
//
// # Middleware Chain
//
// Requests pass through the following middleware (outermost to innermost):
//  1. Recovery: Recovers from panics and returns 500
//  2. RequestID: Assigns the X-Request-ID
//  3. Logging: Logs one entry per completed request
//  4. CORS: Adds Cross-Origin Resource Sharing headers
//  5. Tracing: Starts a server span when tracing is enabled
//
// # Hot Reload
//
// With upstream.watch enabled the config file is watched with fsnotify and
// the upstream URL, model, timeout and API key are swapped on change.
// Requests already streaming keep the settings they started with. Other
// sections require a restart.
package server

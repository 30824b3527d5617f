// Package handlers provides the HTTP endpoint handlers of the relay.
//
// # Chat
//
// ChatHandler serves POST /chat. The body is a JSON object with a single
// required field:
//
//	{"prompt": "Why is the sky blue?"}
//
// The prompt is sent verbatim as one user message to the configured
// upstream chat-completions endpoint with streaming enabled. When the
// upstream answers 200, the caller receives 200 with Content-Type
// text/event-stream and every upstream chunk is written and flushed as it
// arrives, byte for byte.
//
// Failures before streaming starts are returned as {"detail": "..."}:
//
//   - missing or empty prompt: 400 "Prompt is required"
//   - non-200 upstream status: that status, "Upstream API Error: <body>"
//   - anything else: 500 "Internal Server Error: <description>"
//
// Once the stream has started the status cannot change. A failure is then
// logged and the stream ends. A caller disconnect cancels the upstream
// request.
//
// # Health Checks
//
// HealthHandler answers GET /health with 200 while the process runs.
// ReadyHandler answers GET /ready with 200 and the active upstream URL and
// model, or 503 while the server is draining:
//
//	readinessProbe:
//	  httpGet:
//	    path: /ready
//	    port: 8000
//	  periodSeconds: 10
package handlers

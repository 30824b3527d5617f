// Package proxy holds the request and response plumbing of the chat relay.
//
// It parses the inbound /chat body, maps errors to HTTP replies, and copies
// the upstream event stream to the caller.
//
// # Request Flow
//
//  1. Middleware assigns a request ID, logs, recovers panics, applies CORS
//  2. ParseChatRequest reads the bounded body and extracts the prompt
//  3. The upstream client opens one streaming POST with the prompt
//  4. Relay writes and flushes every upstream read as it arrives
//
// # Error Handling
//
// Every error reply has the body
//
//	{"detail": "<message>"}
//
// HandleError picks the status: 400 for validation errors (413 for an
// oversize body), the upstream status for a non-200 upstream reply, and 500
// for anything else. Once streaming has started the status can no longer
// change; a failure then only ends the stream.
package proxy

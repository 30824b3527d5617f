// Package upstream is the client for the chat-completion API that prompts
// are forwarded to.
//
// Each call to Client.Stream issues exactly one POST with stream enabled and
// hands back the open response body for relaying. There are no retries. The
// configured timeout bounds connecting and waiting for response headers
// only; once headers arrive the stream may run as long as the caller's
// context allows.
//
// Settings are held behind an atomic pointer so a config reload can swap
// them while streams are in flight. A call uses the settings it loaded at
// its start.
package upstream

package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBodyBytes is the body limit used when none is configured.
const DefaultMaxBodyBytes = 1 << 20

// Validation messages returned to callers.
const (
	MsgPromptRequired = "Prompt is required"
	MsgPromptType     = "Prompt must be a string"
)

// ChatRequest is the inbound /chat body.
type ChatRequest struct {
	// Prompt is forwarded to the upstream verbatim.
	Prompt string
}

// ParseChatRequest reads and validates the request body. The body is
// limited to maxBytes (DefaultMaxBodyBytes when not positive).
//
// A body that cannot be read or is not a JSON object is returned as a plain
// error. A missing, null, empty, or non-string prompt is a *ValidationError.
func ParseChatRequest(r *http.Request, maxBytes int64) (*ChatRequest, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if int64(len(body)) > maxBytes {
		return nil, &ValidationError{
			Message: fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytes),
			Code:    CodeRequestTooLarge,
			Status:  http.StatusRequestEntityTooLarge,
		}
	}

	var raw struct {
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	if len(raw.Prompt) == 0 || bytes.Equal(raw.Prompt, []byte("null")) {
		return nil, &ValidationError{Message: MsgPromptRequired, Code: CodeMissingPrompt}
	}

	var prompt string
	if err := json.Unmarshal(raw.Prompt, &prompt); err != nil {
		return nil, &ValidationError{Message: MsgPromptType, Code: CodeInvalidPrompt}
	}
	if prompt == "" {
		return nil, &ValidationError{Message: MsgPromptRequired, Code: CodeMissingPrompt}
	}

	return &ChatRequest{Prompt: prompt}, nil
}

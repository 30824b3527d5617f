package proxy

import (
	"context"
	"errors"
	"net/http"

	"parsonlabs/assistant/pkg/upstream"
)

// Validation error codes. They are logged, not returned to callers.
const (
	CodeMissingPrompt   = "missing_prompt"
	CodeInvalidPrompt   = "invalid_prompt"
	CodeRequestTooLarge = "request_too_large"
)

// Outcome labels a finished request for logs and metrics.
type Outcome string

// Request outcomes.
const (
	OutcomeSuccess          Outcome = "success"
	OutcomeValidationError  Outcome = "validation_error"
	OutcomeUpstreamError    Outcome = "upstream_error"
	OutcomeInternalError    Outcome = "internal_error"
	OutcomeClientDisconnect Outcome = "client_disconnect"
)

// ValidationError is a caller mistake in the request body.
type ValidationError struct {
	Message string
	Code    string

	// Status overrides the default 400.
	Status int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus returns the status code for the error.
func (e *ValidationError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return http.StatusBadRequest
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HandleError maps err to an HTTP status and response body.
//
//   - *ValidationError: 400 (413 for oversize bodies) with its message
//   - *upstream.StatusError: the upstream status with its body
//   - anything else: 500
func HandleError(err error) (int, *ErrorResponse) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.HTTPStatus(), &ErrorResponse{Detail: verr.Message}
	}

	var serr *upstream.StatusError
	if errors.As(err, &serr) {
		return serr.StatusCode, &ErrorResponse{Detail: "Upstream API Error: " + serr.Body}
	}

	return http.StatusInternalServerError, &ErrorResponse{Detail: "Internal Server Error: " + err.Error()}
}

// Classify returns the outcome label for err. A nil error is a success.
// Cancellation of the inbound request counts as a client disconnect.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return OutcomeValidationError
	}

	var serr *upstream.StatusError
	if errors.As(err, &serr) {
		return OutcomeUpstreamError
	}

	var werr *WriteError
	if errors.As(err, &werr) || errors.Is(err, context.Canceled) {
		return OutcomeClientDisconnect
	}

	return OutcomeInternalError
}

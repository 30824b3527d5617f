package upstream

import (
	"fmt"
	"time"
)

// StatusError is returned when the upstream answers with a status other
// than 200. Body holds at most MaxErrorBodyBytes of the upstream response.
type StatusError struct {
	// StatusCode is the upstream HTTP status code.
	StatusCode int

	// Body is the (possibly truncated) upstream response body.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when no upstream response was obtained:
// connection failures, TLS errors, or the header timeout expiring.
type TransportError struct {
	// URL is the endpoint that was called.
	URL string

	// Timeout is set when the failure was the header timeout.
	Timeout time.Duration

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("upstream %s: no response within %s", e.URL, e.Timeout)
	}
	return fmt.Sprintf("upstream %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsTimeout reports whether the header timeout expired.
func (e *TransportError) IsTimeout() bool {
	return e.Timeout > 0
}

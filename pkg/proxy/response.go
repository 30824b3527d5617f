package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer.
// It sets the appropriate content-type header.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

// WriteErrorResponse maps err with HandleError and writes the result. It
// returns the status code written.
func WriteErrorResponse(w http.ResponseWriter, err error) (int, error) {
	status, body := HandleError(err)
	return status, WriteJSONResponse(w, status, body)
}

// SetSSEHeaders sets the headers for an event stream response. Proxy
// buffering is disabled so chunks reach the caller as they are written.
func SetSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
}

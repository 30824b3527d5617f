package proxy

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// RelayBufferSize is the read buffer used for each upstream read.
const RelayBufferSize = 32 << 10

// WriteError reports a failure writing to the caller mid-stream.
type WriteError struct {
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write to client: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// RelayStats counts what was relayed.
type RelayStats struct {
	Chunks int
	Bytes  int64
}

// Relay copies src to w, writing and flushing each read before the next
// one. Bytes are passed through unchanged. onChunk, when non-nil, is called
// with the size of every chunk written.
//
// Relay returns nil when src reaches EOF. A failure writing to w is
// returned as a *WriteError; any other error comes from src.
func Relay(w http.ResponseWriter, src io.Reader, onChunk func(n int)) (RelayStats, error) {
	var stats RelayStats
	rc := http.NewResponseController(w)
	buf := make([]byte, RelayBufferSize)

	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return stats, &WriteError{Cause: err}
			}
			if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
				return stats, &WriteError{Cause: err}
			}
			stats.Chunks++
			stats.Bytes += int64(n)
			if onChunk != nil {
				onChunk(n)
			}
		}
		if rerr == io.EOF {
			return stats, nil
		}
		if rerr != nil {
			return stats, fmt.Errorf("upstream stream interrupted: %w", rerr)
		}
	}
}

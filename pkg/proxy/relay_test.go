package proxy

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// chunkReader returns one chunk per Read call.
type chunkReader struct {
	chunks []string
	err    error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

// flushRecorder records the body length at each flush.
type flushRecorder struct {
	*httptest.ResponseRecorder
	flushedAt []int
}

func (f *flushRecorder) Flush() {
	f.flushedAt = append(f.flushedAt, f.Body.Len())
	f.ResponseRecorder.Flush()
}

func TestRelay_PreservesOrderAndFlushesEachChunk(t *testing.T) {
	chunks := []string{"data: a\n\n", "data: b\n\n", "data: c\n\n"}
	w := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}

	var seen []int
	stats, err := Relay(w, &chunkReader{chunks: append([]string(nil), chunks...)}, func(n int) {
		seen = append(seen, n)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := w.Body.String(); got != strings.Join(chunks, "") {
		t.Errorf("body = %q", got)
	}
	if stats.Chunks != 3 || stats.Bytes != int64(len(strings.Join(chunks, ""))) {
		t.Errorf("unexpected stats %+v", stats)
	}

	want := []int{9, 18, 27}
	if len(w.flushedAt) != len(want) {
		t.Fatalf("expected %d flushes, got %v", len(want), w.flushedAt)
	}
	for i := range want {
		if w.flushedAt[i] != want[i] {
			t.Errorf("flush %d at %d bytes, want %d", i, w.flushedAt[i], want[i])
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 chunk callbacks, got %v", seen)
	}
}

func TestRelay_BytesUnchanged(t *testing.T) {
	raw := "data: {\"x\":\"\\u00e9\"}\r\n\r\n: comment\n\nnot-sse\x00\xff"
	w := httptest.NewRecorder()

	if _, err := Relay(w, strings.NewReader(raw), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Body.String() != raw {
		t.Errorf("bytes were altered: %q", w.Body.String())
	}
}

func TestRelay_SourceError(t *testing.T) {
	w := httptest.NewRecorder()
	boom := errors.New("reset by peer")

	stats, err := Relay(w, &chunkReader{chunks: []string{"partial"}, err: boom}, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
	var werr *WriteError
	if errors.As(err, &werr) {
		t.Error("source error reported as write error")
	}
	if stats.Chunks != 1 || w.Body.String() != "partial" {
		t.Errorf("chunks before the error must be delivered, got %+v %q", stats, w.Body.String())
	}
}

type failingWriter struct {
	header http.Header
}

func (f *failingWriter) Header() http.Header       { return f.header }
func (f *failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }
func (f *failingWriter) WriteHeader(int)           {}

func TestRelay_WriteError(t *testing.T) {
	_, err := Relay(&failingWriter{header: http.Header{}}, strings.NewReader("data"), nil)

	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
	if Classify(err) != OutcomeClientDisconnect {
		t.Errorf("expected client disconnect, got %s", Classify(err))
	}
}

func TestSetSSEHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	SetSSEHeaders(w)

	want := map[string]string{
		"Content-Type":      "text/event-stream",
		"Cache-Control":     "no-cache",
		"X-Accel-Buffering": "no",
	}
	for k, v := range want {
		if got := w.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestWriteErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	status, err := WriteErrorResponse(w, &ValidationError{Message: MsgPromptRequired})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusBadRequest || w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d/%d", status, w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"detail":"Prompt is required"}` {
		t.Errorf("unexpected body %s", got)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
}

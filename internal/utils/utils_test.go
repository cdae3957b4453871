package utils

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogWriterSplitsLines(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.New(&out)

	w := LogWriterLevel(logger, zerolog.InfoLevel)
	_, _ = w.Write([]byte("frame=1 fps=0\nframe=2"))
	_, _ = w.Write([]byte(" fps=25\r\n\n"))
	_, _ = w.Write([]byte("trailing"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[1], "frame=2 fps=25") {
		t.Errorf("second line = %q", lines[1])
	}

	w.Flush()
	if !strings.Contains(out.String(), "trailing") {
		t.Errorf("Flush() did not emit trailing line: %q", out.String())
	}
}

func TestCopyToHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	data := strings.Repeat("x", BUF_LEN*2+10)

	n, err := CopyToHTTP(context.Background(), rec, strings.NewReader(data))
	if err != nil {
		t.Fatalf("CopyToHTTP() error = %v", err)
	}
	if n != int64(len(data)) {
		t.Errorf("written = %d, want %d", n, len(data))
	}
	if rec.Body.String() != data {
		t.Error("body mismatch")
	}
	if !rec.Flushed {
		t.Error("expected response to be flushed")
	}
}

func TestCopyToHTTPStopsWhenContextDone(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CopyToHTTP(ctx, rec, strings.NewReader("data"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("CopyToHTTP() error = %v, want context.Canceled", err)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want nothing written", rec.Body.String())
	}
}

func TestCopyToHTTPReadError(t *testing.T) {
	rec := httptest.NewRecorder()
	read, write := io.Pipe()
	go func() {
		_, _ = write.Write([]byte("abc"))
		write.CloseWithError(errors.New("killed"))
	}()

	_, err := CopyToHTTP(context.Background(), rec, read)
	if err == nil || err.Error() != "killed" {
		t.Fatalf("CopyToHTTP() error = %v, want killed", err)
	}
	if rec.Body.String() != "abc" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

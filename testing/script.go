package testing

import (
	"io"
	"strings"
	"sync"
)

// Raw byte sequences for the special keys a terminal sends in raw mode.
// Use them as Script parts next to plain text.
const (
	KeyEnter     = "\r"
	KeyTab       = "\t"
	KeyEsc       = "\x1b"
	KeyBackspace = "\x7f"
	KeyDelete    = "\x1b[3~"
	KeyUp        = "\x1b[A"
	KeyDown      = "\x1b[B"
	KeyRight     = "\x1b[C"
	KeyLeft      = "\x1b[D"
	KeyHome      = "\x1b[H"
	KeyEnd       = "\x1b[F"
	KeyCtrlA     = "\x01"
	KeyCtrlC     = "\x03"
	KeyCtrlD     = "\x04"
	KeyCtrlE     = "\x05"
	KeyCtrlK     = "\x0b"
	KeyCtrlL     = "\x0c"
	KeyCtrlT     = "\x14"
	KeyCtrlU     = "\x15"
	KeyCtrlW     = "\x17"
)

// Script concatenates keystroke parts into a reader that feeds an edit
// session the exact bytes a raw-mode terminal would deliver.
func Script(parts ...string) io.Reader {
	return strings.NewReader(strings.Join(parts, ""))
}

// CaptureWriter records every Write it receives, one slice per call, so
// tests can assert both the rendered bytes and the write granularity (a
// refresh must arrive as a single write).
//
// Thread-safe, matching the other test doubles in this module's lineage.
type CaptureWriter struct {
	mu     sync.Mutex
	writes [][]byte
}

// NewCaptureWriter creates an empty CaptureWriter.
func NewCaptureWriter() *CaptureWriter {
	return &CaptureWriter{}
}

// Write records p and reports it fully written.
func (w *CaptureWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = append(w.writes, append([]byte(nil), p...))
	return len(p), nil
}

// Writes returns the recorded writes in order.
func (w *CaptureWriter) Writes() [][]byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([][]byte(nil), w.writes...)
}

// Count returns the number of Write calls so far.
func (w *CaptureWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.writes)
}

// String returns everything written, concatenated.
func (w *CaptureWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var sb strings.Builder
	for _, p := range w.writes {
		sb.Write(p)
	}
	return sb.String()
}

// Reset clears all recorded writes.
func (w *CaptureWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes = nil
}

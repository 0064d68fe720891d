package sink

import (
	"bufio"
	"fmt"
	"os"
	"time"
)

// LatencyWriter records one per-event processing time in nanoseconds, one
// row per processed input line under a bare "ns" header.
type LatencyWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewLatencyWriter opens path and writes the header row. An empty path
// disables the sink.
func NewLatencyWriter(path string) (*LatencyWriter, error) {
	if path == "" {
		return &LatencyWriter{}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString("ns\n"); err != nil {
		f.Close()
		return nil, err
	}
	return &LatencyWriter{f: f, w: w}, nil
}

// Write appends one latency sample.
func (l *LatencyWriter) Write(d time.Duration) error {
	if l.w == nil {
		return nil
	}
	_, err := fmt.Fprintf(l.w, "%d\n", d.Nanoseconds())
	return err
}

// Close flushes and releases the underlying file, if any.
func (l *LatencyWriter) Close() error {
	if l.f == nil {
		return nil
	}
	if err := l.w.Flush(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}

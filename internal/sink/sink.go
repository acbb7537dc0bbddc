// Package sink defines the two writers the host shell exposes to the
// orchestration layer: a one-line status and an append-only log.
package sink

import (
	"fmt"
	"io"
	"sync"
)

// Status displays the current top-level phase.
type Status interface {
	SetStatus(msg string)
}

// Log records one line of diagnostic output.
type Log interface {
	Append(line string)
}

// LogFunc adapts a function to Log.
type LogFunc func(string)

func (f LogFunc) Append(line string) { f(line) }

// StatusFunc adapts a function to Status.
type StatusFunc func(string)

func (f StatusFunc) SetStatus(msg string) { f(msg) }

// Discard drops everything written to it.
var Discard discard

type discard struct{}

func (discard) Append(string)    {}
func (discard) SetStatus(string) {}

// Writer prints status and log lines to w, one per line.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a sink writing plain lines to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) Append(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}

func (s *Writer) SetStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "[status] %s\n", msg)
}

// Recorder keeps every line in memory.
type Recorder struct {
	mu       sync.Mutex
	lines    []string
	statuses []string
}

func (r *Recorder) Append(line string) {
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}

func (r *Recorder) SetStatus(msg string) {
	r.mu.Lock()
	r.statuses = append(r.statuses, msg)
	r.mu.Unlock()
}

// Lines returns a copy of the recorded log lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Statuses returns a copy of the recorded status messages.
func (r *Recorder) Statuses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statuses...)
}

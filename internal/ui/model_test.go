package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/evenhub-control/internal/orchestrator"
	"github.com/atomicstack/evenhub-control/internal/sim"
	"github.com/atomicstack/evenhub-control/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func newHost(t *testing.T) *sim.Host {
	t.Helper()
	h := sim.New(sim.Options{Profile: sim.DefaultProfile()})
	t.Cleanup(h.Close)
	return h
}

// harnessSender feeds sink writes straight into a harness.
type harnessSender struct {
	h *Harness
}

func (s harnessSender) Send(msg tea.Msg) { s.h.Send(msg) }

// queueSender buffers messages sent from other goroutines until flushed.
type queueSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (q *queueSender) Send(msg tea.Msg) {
	q.mu.Lock()
	q.msgs = append(q.msgs, msg)
	q.mu.Unlock()
}

func (q *queueSender) flush(h *Harness) {
	q.mu.Lock()
	msgs := q.msgs
	q.msgs = nil
	q.mu.Unlock()
	for _, msg := range msgs {
		h.Send(msg)
	}
}

func TestViewBeforeReady(t *testing.T) {
	h := NewHarness(NewModel(newHost(t), 100, 30))
	view := h.View()
	if !strings.Contains(view, "bridge not ready") {
		t.Fatalf("expected not-ready placeholder, got:\n%s", view)
	}
	if !strings.Contains(view, "Waiting for bridge...") {
		t.Fatalf("expected waiting status, got:\n%s", view)
	}
}

func TestSinksForwardStatusAndLog(t *testing.T) {
	h := NewHarness(NewModel(nil, 100, 30))
	status, log := Sinks(harnessSender{h: h})

	status.SetStatus("Bridge init failed")
	log.Append("Error: bridge unavailable")

	m := h.Model()
	if m.Status() != "Bridge init failed" || !m.statusError {
		t.Fatalf("unexpected status %q (error=%t)", m.Status(), m.statusError)
	}
	if lines := m.LogLines(); len(lines) != 1 || lines[0] != "Error: bridge unavailable" {
		t.Fatalf("unexpected log lines %v", lines)
	}
	if !strings.Contains(h.View(), "Error: bridge unavailable") {
		t.Fatalf("expected log line in view")
	}

	status.SetStatus("Bridge ready!")
	if m.statusError {
		t.Fatalf("expected error flag cleared")
	}
}

func TestLogIsBounded(t *testing.T) {
	h := NewHarness(NewModel(nil, 80, 24))
	for i := 0; i < maxLogLines+20; i++ {
		h.Send(logMsg{line: "line"})
	}
	if got := len(h.Model().log); got != maxLogLines {
		t.Fatalf("expected %d retained lines, got %d", maxLogLines, got)
	}
}

func TestLogFilter(t *testing.T) {
	h := NewHarness(NewModel(nil, 100, 30))
	for _, line := range []string{
		"Bridge initialized successfully",
		"Device: model=G2, sn=G2-SIM-0001",
		"List event: \"Hello World\" (index=0, type=click)",
	} {
		h.Send(logMsg{line: line})
	}

	h.Press("/")
	for _, r := range "dvce" {
		h.Press(string(r))
	}
	h.Press("enter")

	lines := h.Model().LogLines()
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "Device:") {
		t.Fatalf("unexpected filtered lines %v", lines)
	}
	if h.Model().filtering {
		t.Fatalf("expected filter prompt closed after enter")
	}

	h.Press("ctrl+u")
	if got := len(h.Model().LogLines()); got != 3 {
		t.Fatalf("expected filter cleared, got %d lines", got)
	}
}

func TestFilterEscapeClears(t *testing.T) {
	h := NewHarness(NewModel(nil, 80, 24))
	h.Send(logMsg{line: "alpha"})
	h.Send(logMsg{line: "beta"})
	h.Press("/")
	h.Press("b")
	if got := len(h.Model().LogLines()); got != 1 {
		t.Fatalf("expected live filtering, got %d lines", got)
	}
	h.Press("esc")
	if h.Quit() {
		t.Fatalf("esc inside the filter must not quit")
	}
	if got := len(h.Model().LogLines()); got != 2 {
		t.Fatalf("expected filter cleared, got %d lines", got)
	}
}

func TestQuitKey(t *testing.T) {
	h := NewHarness(NewModel(nil, 80, 24))
	h.Press("q")
	if !h.Quit() {
		t.Fatalf("expected q to quit")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := NewModel(nil, 90, 0)
	h := NewHarness(m)
	h.Send(tea.WindowSizeMsg{Width: 200, Height: 50})
	if m.width != 90 || m.height != 50 {
		t.Fatalf("unexpected size %dx%d", m.width, m.height)
	}
}

func TestFatalMessageShown(t *testing.T) {
	h := NewHarness(NewModel(nil, 120, 30))
	h.Send(FatalMsg{Err: errors.New("bridge unavailable")})
	if !strings.Contains(h.View(), "bridge unavailable") {
		t.Fatalf("expected fatal error in header")
	}
}

func TestBatteryKeys(t *testing.T) {
	host := newHost(t)
	if _, err := host.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	h := NewHarness(NewModel(host, 110, 30))
	h.Press("-")
	h.Refresh()
	if got := h.Model().snapshot.Status.BatteryLevel; got != 77 {
		t.Fatalf("expected battery 77, got %d", got)
	}
	if !strings.Contains(h.View(), "77%") {
		t.Fatalf("expected battery in device panel:\n%s", h.View())
	}
}

func TestClickUpdatesInfoPanel(t *testing.T) {
	host := newHost(t)
	h := NewHarness(NewModel(host, 120, 32))
	queue := &queueSender{}
	status, log := Sinks(queue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	o := orchestrator.New(orchestrator.Config{}, host, status, log)
	r, err := o.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	queue.flush(h)
	h.Refresh()
	view := h.View()
	if !strings.Contains(view, "Hello World") || !strings.Contains(view, "Welcome") {
		t.Fatalf("expected start-up page rendered:\n%s", view)
	}
	if h.Model().Status() != orchestrator.StatusRunning {
		t.Fatalf("unexpected status %q", h.Model().Status())
	}

	h.Press("down")
	h.Press("enter")

	testutil.Eventually(t, 2*time.Second, "text update log line", func() bool {
		queue.flush(h)
		return containsPrefix(h.Model().LogLines(), "Updated text to:")
	})
	h.Refresh()
	if !strings.Contains(h.View(), "Model: G2") {
		t.Fatalf("expected device info in panel:\n%s", h.View())
	}
	if got := len(host.Updates()); got != 1 {
		t.Fatalf("expected one text update, got %d", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("router did not stop")
	}
}

func containsPrefix(lines []string, prefix string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

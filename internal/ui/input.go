package ui

import (
	"strings"

	"github.com/atomicstack/evenhub-control/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const batteryStep = 10

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.filtering {
		return m.handleFilterKey(key)
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		events.App.Phase("quit")
		return tea.Quit
	case "/":
		m.filtering = true
		m.filter.Focus()
		return nil
	case "ctrl+u":
		m.filter.SetValue("")
		return nil
	}
	return m.gestureFor(key.String())
}

// gestureFor maps a key to a device gesture. Gestures need a host.
func (m *Model) gestureFor(key string) tea.Cmd {
	h := m.host
	if h == nil {
		return nil
	}
	switch key {
	case "up", "k":
		return gesture(func() { h.Scroll(-1) })
	case "down", "j":
		return gesture(func() { h.Scroll(1) })
	case "enter", " ":
		return gesture(func() { h.Click() })
	case "t":
		return gesture(func() { h.DoubleClickText() })
	case "b":
		return gesture(func() { h.Foreground(false) })
	case "f":
		return gesture(func() { h.Foreground(true) })
	case "m":
		return gesture(func() { h.Audio(audioChunk) })
	case "w":
		return gesture(func() { h.ToggleWearing() })
	case "x":
		return gesture(func() { h.ToggleConnection() })
	case "+", "=":
		level := m.snapshot.Status.BatteryLevel + batteryStep
		return gesture(func() { h.SetBattery(level) })
	case "-":
		level := m.snapshot.Status.BatteryLevel - batteryStep
		return gesture(func() { h.SetBattery(level) })
	}
	return nil
}

func (m *Model) handleFilterKey(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyEsc:
		m.filter.SetValue("")
		m.filter.Blur()
		m.filtering = false
		return nil
	case tea.KeyEnter:
		m.filter.Blur()
		m.filtering = false
		return nil
	case tea.KeyCtrlC:
		return tea.Quit
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(key)
	return cmd
}

// filterLines keeps the lines that fuzzily contain query, in their original
// order.
func filterLines(lines []string, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]string(nil), lines...)
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if fuzzy.MatchNormalizedFold(query, line) {
			out = append(out, line)
		}
	}
	return out
}

// isAlert reports whether a log line describes a failure.
func isAlert(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "error") || strings.Contains(lower, "disconnected")
}

package ui

import (
	"github.com/atomicstack/evenhub-control/internal/sim"
	tea "github.com/charmbracelet/bubbletea"
)

type hostChangedMsg struct{}

func waitForHostChange(h *sim.Host) tea.Cmd {
	return func() tea.Msg {
		<-h.Changes()
		return hostChangedMsg{}
	}
}

func (m *Model) handleHostChangedMsg(msg tea.Msg) tea.Cmd {
	if m.host == nil {
		return nil
	}
	m.refresh()
	return waitForHostChange(m.host)
}

func (m *Model) refresh() {
	if m.host != nil {
		m.snapshot = m.host.Snapshot()
	}
}

// gesture runs a device gesture off the update loop, since publishing blocks
// while subscribers drain.
func gesture(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// audioChunk is 100ms of silent 16kHz 16-bit mono PCM.
var audioChunk = make([]byte, 3200)

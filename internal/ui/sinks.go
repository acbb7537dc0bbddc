package ui

import (
	"strings"

	"github.com/atomicstack/evenhub-control/internal/sink"
	tea "github.com/charmbracelet/bubbletea"
)

type statusMsg struct {
	text   string
	failed bool
}

type logMsg struct {
	line string
}

// FatalMsg reports that the orchestration session ended with an error.
type FatalMsg struct {
	Err error
}

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Sinks returns status and log sinks that forward into the program.
func Sinks(s Sender) (sink.Status, sink.Log) {
	status := sink.StatusFunc(func(msg string) {
		s.Send(statusMsg{text: msg, failed: strings.Contains(msg, "failed")})
	})
	log := sink.LogFunc(func(line string) {
		s.Send(logMsg{line: line})
	})
	return status, log
}

package ui

import (
	"reflect"

	"github.com/atomicstack/evenhub-control/internal/sim"
	"github.com/atomicstack/evenhub-control/internal/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxLogLines = 500

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the glasses simulator shell.
type Model struct {
	host        *sim.Host
	snapshot    sim.Snapshot
	status      string
	statusError bool
	log         []string
	fatal       error

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	filter    textinput.Model
	filtering bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the shell for host. Zero dimensions follow the
// terminal size.
func NewModel(host *sim.Host, width, height int) *Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter log"
	ti.CharLimit = 64
	if styles.FilterPrompt != nil {
		ti.PromptStyle = *styles.FilterPrompt
	}
	if styles.Filter != nil {
		ti.TextStyle = *styles.Filter
	}
	m := &Model{
		host:   host,
		filter: ti,
		width:  80,
		height: 24,
	}
	if host != nil {
		m.snapshot = host.Snapshot()
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.host == nil {
		return nil
	}
	return waitForHostChange(m.host)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(statusMsg{}):         m.handleStatusMsg,
		reflect.TypeOf(logMsg{}):            m.handleLogMsg,
		reflect.TypeOf(hostChangedMsg{}):    m.handleHostChangedMsg,
		reflect.TypeOf(FatalMsg{}):          m.handleFatalMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

func (m *Model) handleStatusMsg(msg tea.Msg) tea.Cmd {
	status, ok := msg.(statusMsg)
	if !ok {
		return nil
	}
	m.status = status.text
	m.statusError = status.failed
	return nil
}

func (m *Model) handleLogMsg(msg tea.Msg) tea.Cmd {
	line, ok := msg.(logMsg)
	if !ok {
		return nil
	}
	m.log = append(m.log, line.line)
	if over := len(m.log) - maxLogLines; over > 0 {
		m.log = append([]string(nil), m.log[over:]...)
	}
	return nil
}

func (m *Model) handleFatalMsg(msg tea.Msg) tea.Cmd {
	fatal, ok := msg.(FatalMsg)
	if !ok {
		return nil
	}
	m.fatal = fatal.Err
	m.statusError = true
	return nil
}

// Status returns the current status line.
func (m *Model) Status() string {
	return m.status
}

// LogLines returns the log lines that pass the active filter.
func (m *Model) LogLines() []string {
	return filterLines(m.log, m.filter.Value())
}

package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/evenhub-control/internal/format/table"
	"github.com/atomicstack/evenhub-control/internal/layout"
	"github.com/atomicstack/evenhub-control/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Native resolution of the glasses display.
const (
	displayWidth  = 576
	displayHeight = 288
)

const (
	devicePanelWidth = 26
	minDisplayCols   = 40
	displayRows      = 12
	footerText       = "↑/↓ scroll  enter click  t text  b/f bg/fg  m mic  w wear  x link  +/- battery  / filter  q quit"
)

// View renders the simulated display, the device panel and the log.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	header := m.renderHeader(width)
	displayCols := width - devicePanelWidth - 1
	if displayCols < minDisplayCols {
		displayCols = width
	}
	display := m.renderDisplay(displayCols)
	top := display
	if displayCols < width {
		top = lipgloss.JoinHorizontal(lipgloss.Top, display, " ", m.renderDevicePanel())
	}

	sections := []string{header, top}
	logRows := m.height - lipgloss.Height(header) - lipgloss.Height(top) - 3
	if logRows < 3 {
		logRows = 3
	}
	sections = append(sections, m.renderLog(width, logRows))
	sections = append(sections, m.renderFilterLine(width))
	sections = append(sections, styles.Footer.Render(clip(footerText, width)))
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader(width int) string {
	status := m.status
	if status == "" {
		status = "Waiting for bridge..."
	}
	style := styles.Status
	if m.statusError {
		style = styles.StatusError
	}
	line := styles.Header.Render("EvenHub") + "  " + style.Render(status)
	if m.fatal != nil {
		line += "  " + styles.StatusError.Render(m.fatal.Error())
	}
	return clip(line, width)
}

func (m *Model) renderDisplay(cols int) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.DisplayColor(0)).
		Width(cols - 2).
		Height(displayRows)
	page := m.snapshot.Page
	if page == nil {
		msg := "glasses display is blank"
		if !m.snapshot.Ready {
			msg = "bridge not ready"
		}
		return frame.Render(styles.Placeholder.Render(msg))
	}

	inner := cols - 2
	var boxes []string
	for _, c := range orderedContainers(*page) {
		boxes = append(boxes, m.renderContainer(c, inner))
	}
	return frame.Render(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
}

// container is the common view of list and text containers for rendering.
type container struct {
	geometry layout.Geometry
	list     *layout.ListContainer
	text     *layout.TextContainer
}

// orderedContainers returns every container sorted left to right.
func orderedContainers(page layout.Page) []container {
	var out []container
	for _, l := range page.ListContainers() {
		l := l
		out = append(out, container{geometry: l.Geometry, list: &l})
	}
	for _, t := range page.TextContainers() {
		t := t
		out = append(out, container{geometry: t.Geometry, text: &t})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].geometry.X < out[j-1].geometry.X; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (m *Model) renderContainer(c container, cols int) string {
	g := c.geometry
	w := scale(g.Width, displayWidth, cols) - 2
	h := scale(g.Height, displayHeight, displayRows) - 2
	if w < 4 {
		w = 4
	}
	if h < 1 {
		h = 1
	}
	box := lipgloss.NewStyle().
		Width(w).
		Height(h).
		MarginRight(1)
	if g.BorderWidth > 0 {
		border := lipgloss.NormalBorder()
		if g.BorderRadius > 0 {
			border = lipgloss.RoundedBorder()
		}
		box = box.Border(border).BorderForeground(theme.DisplayColor(g.BorderColor))
	}

	var body string
	if c.list != nil {
		body = m.renderList(*c.list, w)
	} else {
		content, ok := m.snapshot.Texts[c.text.ID]
		if !ok {
			content = c.text.Content
		}
		body = styles.Text.Width(w).Render(content)
	}
	return box.Render(body)
}

func (m *Model) renderList(l layout.ListContainer, width int) string {
	rows := make([]string, 0, len(l.Items.Names))
	for i, name := range l.Items.Names {
		label := clip(name, width-2)
		if i == m.snapshot.Selection && l.Items.SelectBorder {
			rows = append(rows, styles.ItemIndicator.Render("▌")+styles.SelectedItem.Render(label))
			continue
		}
		rows = append(rows, " "+styles.Item.Render(label))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderDevicePanel() string {
	snap := m.snapshot
	battery := fmt.Sprintf("%d%%", snap.Status.BatteryLevel)
	rows := table.KeyValue(
		[2]string{"model", snap.Profile.Model},
		[2]string{"serial", snap.Profile.Serial},
		[2]string{"link", snap.Status.ConnectType.String()},
		[2]string{"battery", battery},
		[2]string{"wearing", fmt.Sprintf("%t", snap.Status.IsWearing)},
		[2]string{"updates", fmt.Sprintf("%d", snap.Updates)},
	)
	for i, row := range rows {
		rows[i] = clip(row, devicePanelWidth-2)
	}
	return styles.Panel.
		Border(lipgloss.NormalBorder()).
		Width(devicePanelWidth - 2).
		Render(strings.Join(rows, "\n"))
}

func (m *Model) renderLog(width, rows int) string {
	lines := m.LogLines()
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	out := make([]string, 0, rows)
	for _, line := range lines {
		style := styles.LogLine
		if isAlert(line) {
			style = styles.LogAlert
		}
		out = append(out, style.Render(clip(line, width)))
	}
	for len(out) < rows {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderFilterLine(width int) string {
	if !m.filtering && m.filter.Value() == "" {
		return ""
	}
	return clip(m.filter.View(), width)
}

func scale(v, from, to int) int {
	if from <= 0 {
		return v
	}
	return v * to / from
}

func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header        *lipgloss.Style
	Status        *lipgloss.Style
	StatusError   *lipgloss.Style
	Item          *lipgloss.Style
	ItemIndicator *lipgloss.Style
	SelectedItem  *lipgloss.Style
	Text          *lipgloss.Style
	Placeholder   *lipgloss.Style
	Panel         *lipgloss.Style
	LogLine       *lipgloss.Style
	LogAlert      *lipgloss.Style
	Filter        *lipgloss.Style
	FilterPrompt  *lipgloss.Style
	Footer        *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	StatusError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("71")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("40")).Bold(true),
	),
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("77")),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Panel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	LogLine: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	LogAlert: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Green shades approximating the glasses' monochrome display, indexed by the
// border colour value a container declares.
var displayPalette = []lipgloss.Color{
	"22", "28", "34", "35", "40", "41", "46", "47",
	"71", "77", "78", "83", "84", "113", "119", "120",
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// DisplayColor maps a container colour index onto the display palette.
func DisplayColor(index int) lipgloss.Color {
	if index < 0 {
		index = 0
	}
	if index >= len(displayPalette) {
		index = len(displayPalette) - 1
	}
	return displayPalette[index]
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

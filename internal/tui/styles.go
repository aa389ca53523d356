package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
)

const (
	defaultHeadingColor = "#5C6BC0"
	othersHeadingColor  = "#9E9E9E"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	kudosStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// contrastText picks black or white text for a background color.
func contrastText(bg string) lipgloss.Color {
	c, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color("#FFFFFF")
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#FFFFFF")
}

// headingStyle renders a heading bar in its own color.
func headingStyle(g tracker.GroupView) lipgloss.Style {
	bg := g.Heading.Color
	switch {
	case g.Others:
		bg = othersHeadingColor
	case bg == "":
		bg = defaultHeadingColor
	}
	if _, err := colorful.Hex(bg); err != nil {
		bg = defaultHeadingColor
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(contrastText(bg)).
		Bold(true).
		Padding(0, 1)
}

func toneStyle(t tracker.Tone) lipgloss.Style {
	switch t {
	case tracker.ToneKudos:
		return kudosStyle
	case tracker.ToneZero:
		return faintStyle
	case tracker.ToneStatus:
		return warningStyle
	}
	return successStyle
}

func severityStyle(s notify.Severity) lipgloss.Style {
	switch s {
	case notify.Error:
		return dangerStyle
	case notify.Warning:
		return warningStyle
	case notify.Info:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	}
	return successStyle
}

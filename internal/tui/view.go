package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.form != nil:
		content = m.form.View()
	case m.view == viewLogin:
		content = m.viewLogin()
	case m.view == viewTarget:
		content = m.viewTarget()
	case m.view == viewFriendToday:
		content = m.viewFriendToday()
	case m.view == viewDetail && m.detail != nil:
		content = m.detail.body
	case m.view == viewFriends:
		content = m.viewList("Friends")
	case m.view == viewTodos:
		content = m.viewList("Todos")
	case m.view == viewReminders:
		content = m.viewList("Reminders")
	case m.view == viewFeedback:
		content = m.viewList("Feedback")
	case m.view == viewDeserve:
		content = m.viewList("Do I deserve it?")
	}

	parts := []string{}
	if m.view != viewLogin {
		parts = append(parts, m.viewTabs())
	}
	parts = append(parts, docStyle.Render(content), m.viewStatus(), m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var out []string
	for _, t := range tabs {
		active := t.view == m.view ||
			(m.view == viewFriendToday && t.view == viewFriends) ||
			(m.view == viewDetail && t.view == viewFeedback)
		if active {
			out = append(out, activeTabStyle.Render(t.title))
		} else {
			out = append(out, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// viewStatus shows the spinner while anything is loading and the visible
// notifications, newest last.
func (m Model) viewStatus() string {
	var lines []string
	if m.app.Loader.Busy() {
		lines = append(lines, m.spinner.View()+" Loading…")
	}
	for _, n := range m.app.Notify.Visible() {
		lines = append(lines, severityStyle(n.Severity).Render(n.Message))
	}
	return strings.Join(lines, "\n")
}

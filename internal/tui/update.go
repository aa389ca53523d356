package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/session"
)

func (m Model) post(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		next, cmd := m.Update(msg.inner)
		return next, tea.Batch(cmd, next.(Model).listen())

	case changedMsg:
		m.clampCursor()
		return m, nil

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case sessionMsg:
		return m.onSession(msg.state)

	case navigateMsg:
		logger.Debug("Navigating", "path", msg.path)
		m.form, m.submit = nil, nil
		m.menuOpen = false
		if m.app.Session.State() == session.Authenticated {
			return m.open(viewTarget)
		}
		return m.onSession(session.Anonymous)

	case loadedMsg:
		m.clampCursor()
		return m, nil

	case reloadMsg:
		return m.reload(msg.view)

	case itemsMsg:
		ls := m.list(msg.view)
		ls.items = msg.items
		ls.extra = msg.extra
		ls.loaded = true
		if ls.cursor >= len(ls.items) {
			ls.cursor = max(len(ls.items)-1, 0)
		}
		return m, nil

	case friendTodayMsg:
		m.friend = &msg
		m.previous = m.view
		m.view = viewFriendToday
		m.cursor = 0
		return m, nil

	case detailMsg:
		m.detail = &msg
		m.previous = m.view
		m.view = viewDetail
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(k)
	}
	return m, nil
}

// updateForm drives the open huh form. Esc abandons it.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form, m.submit = nil, nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		submit := m.submit
		m.form, m.submit = nil, nil
		if submit != nil {
			return m, tea.Batch(cmd, submit())
		}
	case huh.StateAborted:
		m.form, m.submit = nil, nil
	}
	return m, cmd
}

// showForm opens f; submit runs once it completes.
func (m Model) showForm(f *huh.Form, submit func() tea.Cmd) (Model, tea.Cmd) {
	m.form = f.WithTheme(huh.ThemeDracula())
	m.submit = submit
	m.menuOpen = false
	return m, m.form.Init()
}

func (m Model) onSession(state session.State) (tea.Model, tea.Cmd) {
	switch state {
	case session.Authenticated:
		if m.view == viewLogin {
			return m.open(viewTarget)
		}
	case session.Anonymous:
		if m.tracker != nil {
			m.tracker.Close()
			m.tracker = nil
		}
		m.lists = map[view]*listState{}
		m.friend, m.detail = nil, nil
		m.editMode, m.menuOpen = false, false
		m.view = viewLogin
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	if key.Matches(msg, k.Quit) && !(m.view == viewTarget && m.menuOpen) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, k.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.view {
	case viewLogin:
		return m.loginKey(msg)
	case viewFriendToday, viewDetail:
		if key.Matches(msg, k.Back) {
			m.view = m.previous
			m.friend, m.detail = nil, nil
			return m, nil
		}
		if m.view == viewFriendToday {
			return m.moveCursor(msg, len(targetRows(m.friend.view))), nil
		}
		return m, nil
	}

	if !m.menuOpen {
		switch {
		case key.Matches(msg, k.Tab):
			return m.open(m.nextTab(1))
		case key.Matches(msg, k.ShiftTab):
			return m.open(m.nextTab(-1))
		case key.Matches(msg, k.Logout):
			m.app.Session.Logout()
			return m, nil
		case key.Matches(msg, k.Refresh):
			return m.reload(m.view)
		}
	}

	if m.view == viewTarget {
		return m.targetKey(msg)
	}
	return m.listKey(msg)
}

func (m Model) nextTab(step int) view {
	i := 0
	for j, t := range tabs {
		if t.view == m.view {
			i = j
		}
	}
	i = (i + step + len(tabs)) % len(tabs)
	return tabs[i].view
}

// open switches to v and fetches its data.
func (m Model) open(v view) (tea.Model, tea.Cmd) {
	m.view = v
	m.menuOpen = false
	if v == viewTarget {
		if m.tracker != nil {
			m.clampCursor()
			return m, nil
		}
		t := m.app.NewTracker()
		t.OnChange(func() { m.post(changedMsg{}) })
		m.tracker = t
		m.cursor = 0
		return m, func() tea.Msg { return loadedMsg{err: t.Load(m.ctx)} }
	}
	if ls := m.list(v); ls.loaded {
		return m, nil
	}
	return m, m.fetch(v)
}

func (m Model) reload(v view) (tea.Model, tea.Cmd) {
	if v == viewTarget {
		if m.tracker == nil {
			return m, nil
		}
		t := m.tracker
		return m, func() tea.Msg { return loadedMsg{err: t.Refresh(m.ctx)} }
	}
	return m, m.fetch(v)
}

func (m Model) moveCursor(msg tea.KeyMsg, n int) Model {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	}
	return m
}

func (m *Model) clampCursor() {
	if m.tracker == nil {
		return
	}
	n := len(targetRows(m.tracker.Snapshot()))
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

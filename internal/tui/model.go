// Package tui is the interactive client: a bubbletea program with one view
// per area of the app. Data flows through the same App the one-shot
// commands use, so debounced writes, 401 handling and notifications behave
// identically.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/app"
	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/session"
)

type view int

const (
	viewLogin view = iota
	viewTarget
	viewFriends
	viewTodos
	viewReminders
	viewFeedback
	viewDeserve
	viewFriendToday
	viewDetail
)

var tabs = []struct {
	view  view
	title string
}{
	{viewTarget, "Targets"},
	{viewFriends, "Friends"},
	{viewTodos, "Todos"},
	{viewReminders, "Reminders"},
	{viewFeedback, "Feedback"},
	{viewDeserve, "Deserve"},
}

// Options configures the program.
type Options struct {
	// OpenBrowser opens the Google sign-in page. Nil shows the URL only.
	OpenBrowser func(url string) error
	// CallbackAddr is where the sign-in redirect is caught. Empty means the
	// token must be pasted.
	CallbackAddr string
}

type (
	// eventMsg wraps everything that arrives from outside the program.
	eventMsg    struct{ inner tea.Msg }
	changedMsg  struct{}
	sessionMsg  struct{ state session.State }
	navigateMsg struct{ path string }
	loadedMsg   struct{ err error }
	reloadMsg   struct{ view view }
	tickMsg     time.Time
)

type itemsMsg struct {
	view  view
	items []item
	extra interface{}
}

type friendTodayMsg struct {
	name string
	view tracker.View
}

type detailMsg struct {
	title string
	body  string
}

// Model is the whole program state.
type Model struct {
	ctx    context.Context
	app    *app.App
	opts   Options
	events chan tea.Msg

	view     view
	previous view
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	width    int
	height   int
	quitting bool

	tracker  *tracker.Tracker
	cursor   int
	editMode bool
	menuOpen bool
	menuPos  int

	lists  map[view]*listState
	friend *friendTodayMsg
	detail *detailMsg

	form   *huh.Form
	submit func() tea.Cmd
}

// New builds the program model and subscribes it to the App's session,
// loader and notifications. 401s route back to the login view.
func New(ctx context.Context, a *app.App, opts Options) Model {
	events := make(chan tea.Msg, 64)
	post := func(msg tea.Msg) {
		select {
		case events <- msg:
		default:
		}
	}

	a.Notify.Subscribe(func(notify.Notification) { post(changedMsg{}) })
	a.Loader.OnChange(func(bool) { post(changedMsg{}) })
	a.Session.Subscribe(func(s session.State) { post(sessionMsg{state: s}) })
	a.SetNavigator(func(path string) {
		// Never dropped.
		go func() { events <- navigateMsg{path: path} }()
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctx:     ctx,
		app:     a,
		opts:    opts,
		events:  events,
		view:    viewLogin,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		lists:   map[view]*listState{},
	}
}

// Run starts the program and blocks until it exits. Pending writes are
// sent before Run returns.
func Run(ctx context.Context, a *app.App, opts Options) error {
	p := tea.NewProgram(New(ctx, a, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.shutdown()
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.spinner.Tick, tick(), m.resolve())
}

func (m Model) listen() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return eventMsg{inner: <-events}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) resolve() tea.Cmd {
	return func() tea.Msg {
		return sessionMsg{state: m.app.Session.Resolve(m.ctx)}
	}
}

// shutdown fires scheduled writes and waits briefly for them to land.
func (m Model) shutdown() {
	if m.tracker == nil {
		return
	}
	m.tracker.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.tracker.Wait(ctx); err != nil {
		logger.Warn("Pending writes did not finish", "error", err)
	}
}

// call runs fn with the loader shown. Failures other than 401 become an
// error notification.
func (m Model) call(fallback string, fn func(ctx context.Context) error) error {
	err := m.app.Loader.Track(func() error { return fn(m.ctx) })
	if err != nil {
		logger.Error(fallback, "error", err)
		if !api.IsUnauthorized(err) {
			m.app.Notify.Notify(api.Message(err, fallback), notify.Error)
		}
	}
	return err
}

// mutation runs fn in the background, announces success and reloads v.
func (m Model) mutation(fallback, success string, v view, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := m.call(fallback, fn); err != nil {
			return nil
		}
		if success != "" {
			m.app.Notify.Notify(success, notify.Success)
		}
		return reloadMsg{view: v}
	}
}

func (m Model) ShortHelp() []key.Binding {
	k := m.keys
	switch m.view {
	case viewLogin:
		return []key.Binding{k.Login, k.Paste, k.IDToken, k.Quit}
	case viewTarget:
		return []key.Binding{k.Select, k.Inc, k.Dec, k.Edit, k.Menu, k.Save, k.Tab, k.Help}
	case viewFriendToday, viewDetail:
		return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
	}
	return []key.Binding{k.Select, k.Add, k.Delete, k.Tab, k.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	k := m.keys
	global := []key.Binding{k.Tab, k.ShiftTab, k.Refresh, k.Logout, k.Help, k.Quit}
	nav := []key.Binding{k.Up, k.Down, k.Select, k.Back}

	var actions []key.Binding
	switch m.view {
	case viewTarget:
		actions = []key.Binding{k.Inc, k.Dec, k.Edit, k.Menu, k.Add, k.AddGroup, k.Delete, k.Save}
	case viewFriends, viewReminders, viewDeserve:
		actions = []key.Binding{k.Add, k.Edit, k.Delete}
	case viewTodos:
		actions = []key.Binding{k.Add, k.AddGroup, k.Edit, k.Delete}
	case viewFeedback:
		actions = []key.Binding{k.Add, k.Edit, k.Delete, k.Status}
	}
	return [][]key.Binding{global, nav, actions}
}

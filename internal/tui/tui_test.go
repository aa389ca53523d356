package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/app"
	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/client"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/credentials"
)

type server struct {
	mu     sync.Mutex
	routes map[string]string
	status map[string]int
	posts  []string
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	s.mu.Lock()
	if r.Method != http.MethodGet {
		s.posts = append(s.posts, route)
	}
	body, ok := s.routes[route]
	status := s.status[route]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	if !ok {
		body = `{}`
	}
	_, _ = w.Write([]byte(body))
}

func (s *server) writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.posts...)
}

func newModel(t *testing.T, s *server) Model {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	store := &credentials.FileStore{Path: filepath.Join(t.TempDir(), "credentials.json")}
	require.NoError(t, store.Save(&credentials.Credentials{IDToken: "tok"}))
	a := app.New(app.Options{
		Store:    store,
		Client:   client.Options{BaseURL: srv.URL + "/"},
		Debounce: time.Hour,
	})
	return New(context.Background(), a, Options{})
}

func press(m Model, keys string) Model {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	if cmd != nil {
		if msg := cmd(); msg != nil {
			next, _ = next.Update(msg)
		}
	}
	return next.(Model)
}

func openTarget(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.open(viewTarget)
	require.NotNil(t, cmd)
	next, _ = next.Update(cmd())
	opened := next.(Model)
	t.Cleanup(opened.shutdown)
	return opened
}

func TestTargetRowsHideCollapsedSteps(t *testing.T) {
	v := tracker.View{Groups: []tracker.GroupView{
		{Heading: api.Heading{ID: "h1"}, Expanded: true, Steps: make([]tracker.StepView, 2)},
		{Heading: api.Heading{ID: "h2"}, Expanded: false, Steps: make([]tracker.StepView, 3)},
		{Heading: tracker.OthersHeading(), Others: true, Expanded: true, Steps: make([]tracker.StepView, 1)},
	}}

	rows := targetRows(v)
	require.Len(t, rows, 6)
	assert.True(t, rows[0].heading())
	assert.Equal(t, row{group: 0, step: 1}, rows[2])
	assert.Equal(t, row{group: 1, step: -1}, rows[3])
	assert.Equal(t, row{group: 2, step: 0}, rows[5])
}

func TestContrastText(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#000000"), contrastText("#FFEB3B"))
	assert.Equal(t, lipgloss.Color("#FFFFFF"), contrastText("#1A237E"))
	assert.Equal(t, lipgloss.Color("#FFFFFF"), contrastText("not a color"))
}

func TestReadOnlyRenderHasNoControls(t *testing.T) {
	steps := []api.Step{
		{ID: "s1", Title: "Gym", Type: api.StepBool, Days: []api.Weekday{"Mon"}, TargetStepData: []api.StepDatum{{Count: 1}}},
		{ID: "s2", Title: "Pages", Type: api.StepCount, TargetStepData: []api.StepDatum{{Count: 12}}},
	}
	out := renderTarget(tracker.ReadOnly(steps, "Tue"), -1, modeReadOnly)

	assert.Contains(t, out, "Gym")
	assert.Contains(t, out, tracker.LabelKudos)
	assert.NotContains(t, out, "["+tracker.LabelKudos+"]")
	assert.NotContains(t, out, " +")
}

func TestTargetKeysEditTracker(t *testing.T) {
	s := &server{routes: map[string]string{
		"GET /targetHeadings": `[]`,
		"GET /targetSteps":    `[{"id":"s1","title":"Pushups","type":"count"},{"id":"s2","title":"Read","type":"bool"}]`,
	}}
	m := openTarget(t, newModel(t, s))
	require.True(t, m.tracker.Snapshot().Loaded)

	// Rows: Others heading, Pushups, Read.
	m = press(m, "j")
	m = press(m, "+")
	m = press(m, "+")
	m = press(m, "-")
	got, _ := m.tracker.Pending("s1")
	assert.Equal(t, 1, got)

	m = press(m, "j")
	m = press(m, " ")
	got, _ = m.tracker.Pending("s2")
	assert.Equal(t, 1, got)

	assert.Empty(t, s.writes(), "writes wait for the debounce")
	assert.True(t, m.tracker.HasUnsaved())

	m = press(m, "s")
	assert.ElementsMatch(t, []string{"POST /targetSteps/s1/data", "POST /targetSteps/s2/data"}, s.writes())
	assert.False(t, m.tracker.HasUnsaved())
}

func TestEditModeBlocksValueChanges(t *testing.T) {
	s := &server{routes: map[string]string{
		"GET /targetHeadings": `[]`,
		"GET /targetSteps":    `[{"id":"s1","title":"Pushups","type":"count"}]`,
	}}
	m := openTarget(t, newModel(t, s))

	m = press(m, "e")
	assert.True(t, m.editMode)
	m = press(m, "j")
	m = press(m, "+")
	got, _ := m.tracker.Pending("s1")
	assert.Equal(t, 0, got)
	assert.Contains(t, m.View(), "[edit]")
}

func TestMenuTogglesEditMode(t *testing.T) {
	s := &server{routes: map[string]string{
		"GET /targetHeadings": `[]`,
		"GET /targetSteps":    `[]`,
	}}
	m := openTarget(t, newModel(t, s))

	m = press(m, "m")
	require.True(t, m.menuOpen)
	assert.Contains(t, m.View(), "Add heading")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.False(t, m.menuOpen)
	assert.True(t, m.editMode)
}

func TestUnauthorizedReturnsToLogin(t *testing.T) {
	s := &server{
		routes: map[string]string{"GET /targetHeadings": `[]`},
		status: map[string]int{"GET /targetSteps": http.StatusUnauthorized},
	}
	m := openTarget(t, newModel(t, s))

	var nav tea.Msg
	deadline := time.After(2 * time.Second)
	for nav == nil {
		select {
		case msg := <-m.events:
			if n, ok := msg.(navigateMsg); ok {
				nav = n
			}
		case <-deadline:
			t.Fatal("no navigation after 401")
		}
	}

	next, _ := m.Update(nav)
	m = next.(Model)
	assert.Equal(t, viewLogin, m.view)
	assert.Nil(t, m.tracker)
	assert.True(t, strings.Contains(m.View(), "Sign in"))
}

func TestTabsCycle(t *testing.T) {
	m := Model{view: viewTarget}
	assert.Equal(t, viewFriends, m.nextTab(1))
	assert.Equal(t, viewDeserve, m.nextTab(-1))
}

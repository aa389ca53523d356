package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/client"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/credentials"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/loader"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/prompter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/session"
)

func init() {
	color.NoColor = true
}

type memStore struct {
	mu    sync.Mutex
	creds *credentials.Credentials
}

func (m *memStore) Load() (*credentials.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds, nil
}

func (m *memStore) Save(c *credentials.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = c
	return nil
}

func (m *memStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}

type request struct {
	Route string
	Body  map[string]interface{}
}

type route struct {
	status int
	body   string
}

// backend answers from a route table keyed by "METHOD /path".
type backend struct {
	mu     sync.Mutex
	routes map[string]route
	calls  []request
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	req := request{Route: key}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &req.Body)
	}

	b.mu.Lock()
	b.calls = append(b.calls, req)
	rt, ok := b.routes[key]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		rt = route{200, `{}`}
	}
	if rt.status == 0 {
		rt.status = 200
	}
	w.WriteHeader(rt.status)
	_, _ = w.Write([]byte(rt.body))
}

func (b *backend) Calls(prefix string) []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []request
	for _, c := range b.calls {
		if strings.HasPrefix(c.Route, prefix) {
			out = append(out, c)
		}
	}
	return out
}

type fixture struct {
	env    *Env
	be     *backend
	store  *memStore
	center *notify.Center
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func ok(body string) route { return route{200, body} }

func newFixture(t *testing.T, input string, routes map[string]route) *fixture {
	t.Helper()
	if routes == nil {
		routes = map[string]route{}
	}
	if _, set := routes["GET /users/me"]; !set {
		routes["GET /users/me"] = ok(`{"uid":"u1","displayName":"Ada"}`)
	}

	be := &backend{routes: routes}
	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)

	store := &memStore{creds: &credentials.Credentials{IDToken: "tok"}}
	c := client.New(client.Options{BaseURL: srv.URL + "/", Tokens: credentials.TokenSource{Store: store}})
	a := api.New(c)
	sess := session.New(session.Options{Store: store, Profile: a, BaseURL: srv.URL + "/", AdminUID: "admin"})
	center := notify.NewCenter()
	c.Inject(client.Hooks{Logout: sess.Logout, Notify: center.Notify, Navigate: func(string) {}})

	f := &fixture{be: be, store: store, center: center, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	f.env = &Env{
		API:     a,
		Session: sess,
		Loader:  loader.New(),
		Notify:  center,
		Out:     output.New(f.out, f.errOut, output.FormatText),
		Prompt:  prompter.New(strings.NewReader(input), &bytes.Buffer{}),
		NewTracker: func(opts ...tracker.Option) *tracker.Tracker {
			base := []tracker.Option{tracker.WithDebounce(time.Hour), tracker.WithNotifier(center)}
			return tracker.New(a, append(base, opts...)...)
		},
	}
	return f
}

func (f *fixture) messages() []string {
	var out []string
	for _, n := range f.center.Visible() {
		out = append(out, n.Message)
	}
	return out
}

func TestTargetIncrementWritesOnce(t *testing.T) {
	f := newFixture(t, "", map[string]route{
		"GET /targetHeadings": ok(`[]`),
		"GET /targetSteps":    ok(`[{"id":"s1","title":"Run","type":"count","status":"active","targetStepData":[{"date":"2025-03-04","count":2,"kudos":0}]}]`),
	})

	err := NewTargetService(f.env).Apply(context.Background(), "run", OpIncrement, 0)
	require.NoError(t, err)

	writes := f.be.Calls("POST /targetSteps/s1/data")
	require.Len(t, writes, 1)
	assert.Equal(t, float64(3), writes[0].Body["count"])
	assert.Contains(t, f.errOut.String(), "Run: 3")
	assert.False(t, f.env.Loader.Busy())
}

func TestTargetListPrintsGroups(t *testing.T) {
	f := newFixture(t, "", map[string]route{
		"GET /targetHeadings": ok(`[{"id":"h1","name":"Health"}]`),
		"GET /targetSteps":    ok(`[{"id":"s1","title":"Run","type":"count","targetHeadingId":"h1"},{"id":"s2","title":"Read","type":"bool"}]`),
	})

	require.NoError(t, NewTargetService(f.env).List(context.Background()))
	out := f.out.String()
	assert.Contains(t, out, "Health")
	assert.Contains(t, out, "Others")
	assert.Less(t, strings.Index(out, "Health"), strings.Index(out, "Others"))
	assert.Contains(t, out, tracker.LabelAbsent)
}

func TestTargetRequiresLogin(t *testing.T) {
	f := newFixture(t, "", nil)
	f.store.creds = nil

	err := NewTargetService(f.env).Apply(context.Background(), "run", OpIncrement, 0)
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Contains(t, f.errOut.String(), "Not logged in")
	assert.Empty(t, f.be.Calls("GET /targetSteps"))
}

func TestTargetWriteFailureIsReported(t *testing.T) {
	f := newFixture(t, "", map[string]route{
		"GET /targetHeadings":       ok(`[]`),
		"GET /targetSteps":          ok(`[{"id":"s1","title":"Read","type":"bool"}]`),
		"POST /targetSteps/s1/data": {500, `{"error":"database down"}`},
	})

	err := NewTargetService(f.env).Apply(context.Background(), "s1", OpToggle, 0)
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Equal(t, []string{"database down"}, f.messages())
}

func TestServerErrorBecomesNotification(t *testing.T) {
	f := newFixture(t, "", map[string]route{
		"POST /userFriends": {400, `{"error":"Already friends"}`},
	})

	err := NewFriendService(f.env).Add(context.Background(), "u2")
	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Equal(t, []string{"Already friends"}, f.messages())
}

func TestCannotAddSelf(t *testing.T) {
	f := newFixture(t, "", nil)
	err := NewFriendService(f.env).Add(context.Background(), "u1")
	assert.Error(t, err)
	assert.Empty(t, f.be.Calls("POST /userFriends"))
}

func TestFriendTodayIsReadOnly(t *testing.T) {
	f := newFixture(t, "", map[string]route{
		"GET /userFriends/u2/today": ok(`{"steps":[{"id":"s1","title":"Gym","type":"bool","days":["Mon"],"targetStepData":[{"count":1}]}]}`),
	})
	svc := NewFriendService(f.env)
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 12, 0, 0, 0, time.Local) }

	require.NoError(t, svc.Today(context.Background(), "u2"))
	assert.Contains(t, f.out.String(), tracker.LabelKudos)
	assert.Empty(t, f.be.Calls("POST"))
}

func TestDeleteAsksFirst(t *testing.T) {
	f := newFixture(t, "n\n", nil)

	err := NewStepService(f.env).Delete(context.Background(), "s1", false)
	assert.ErrorIs(t, err, prompter.ErrCancelled)
	assert.Empty(t, f.be.Calls("DELETE"))

	require.NoError(t, NewStepService(f.env).Delete(context.Background(), "s1", true))
	assert.Len(t, f.be.Calls("DELETE /targetSteps/s1"), 1)
	assert.Equal(t, []string{"Step deleted"}, f.messages())
}

func TestStepAddDefaults(t *testing.T) {
	f := newFixture(t, "", map[string]route{
		"POST /targetSteps": ok(`{"id":"s9","title":"Stretch"}`),
	})
	title := "Stretch"

	require.NoError(t, NewStepService(f.env).Add(context.Background(), StepInput{
		Title:   &title,
		Days:    []string{"fri,mon"},
		DaysSet: true,
	}))

	calls := f.be.Calls("POST /targetSteps")
	require.Len(t, calls, 1)
	assert.Equal(t, "count", calls[0].Body["type"])
	assert.Equal(t, "Star", calls[0].Body["icon"])
	assert.Equal(t, []interface{}{"Mon", "Fri"}, calls[0].Body["days"])
}

func TestStepInputValidation(t *testing.T) {
	bad := "text"
	empty := ""
	title := "Run"

	_, err := StepInput{Title: &title, Type: &bad}.Build(api.StepRequest{}, true)
	assert.Error(t, err)

	_, err = StepInput{Title: &empty}.Build(api.StepRequest{}, true)
	assert.Error(t, err)

	boolType := "bool"
	_, err = StepInput{Type: &boolType}.Build(api.StepRequest{Title: "Run", Type: api.StepCount}, false)
	assert.Error(t, err, "type is fixed after creation")

	icon := "nope-not-an-icon"
	_, err = StepInput{Title: &title, Icon: &icon}.Build(api.StepRequest{}, true)
	assert.Error(t, err)

	req, err := StepInput{Title: &title, Type: &boolType}.Build(api.StepRequest{}, true)
	require.NoError(t, err)
	assert.Equal(t, api.StepBool, req.Type)
}

func TestStepEditKeepsUnsetFields(t *testing.T) {
	f := newFixture(t, "", map[string]route{
		"GET /targetSteps/s1": ok(`{"id":"s1","title":"Run","description":"5k","type":"count","days":["Tue"],"isPublic":true,"icon":"Star"}`),
	})
	title := "Run far"

	require.NoError(t, NewStepService(f.env).Edit(context.Background(), "s1", StepInput{Title: &title}))

	puts := f.be.Calls("PUT /targetSteps/s1")
	require.Len(t, puts, 1)
	body := puts[0].Body
	assert.Equal(t, "Run far", body["title"])
	assert.Equal(t, "5k", body["description"])
	assert.Equal(t, "count", body["type"])
	assert.Equal(t, true, body["isPublic"])
	assert.Equal(t, []interface{}{"Tue"}, body["days"])
}

func TestFeedbackStatusIsAdminOnly(t *testing.T) {
	f := newFixture(t, "", nil)
	err := NewFeedbackService(f.env).SetStatus(context.Background(), "f1", "fixed")
	assert.Error(t, err)
	assert.Empty(t, f.be.Calls("PATCH"))

	f = newFixture(t, "", map[string]route{"GET /users/me": ok(`{"uid":"admin"}`)})
	require.NoError(t, NewFeedbackService(f.env).SetStatus(context.Background(), "f1", "In Progress"))
	calls := f.be.Calls("PATCH /feedback/f1/status")
	require.Len(t, calls, 1)
	assert.Equal(t, "in progress", calls[0].Body["status"])
}

func TestFeedbackTagValidation(t *testing.T) {
	_, err := buildFeedback("Crash", "", "complaint")
	assert.Error(t, err)

	req, err := buildFeedback(" Crash ", "on save", "BUG")
	require.NoError(t, err)
	assert.Equal(t, api.FeedbackTag("bug"), req.Tag)
	assert.Equal(t, "Crash", req.Title)

	md := FeedbackMarkdown(api.Feedback{Title: "Crash", Tag: "bug", Status: "open", Description: "on save"})
	assert.Contains(t, md, "# Crash")
	assert.Contains(t, md, "on save")
}

func TestReminderInput(t *testing.T) {
	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	title := "Water"
	at := "18:30"
	custom := "custom"
	daily := "daily"

	req, err := ReminderInput{Title: &title, Time: &at}.Build(api.ReminderRequest{}, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04T18:30:00Z", req.Time)
	assert.Equal(t, api.RepeatNone, req.Repeat)

	_, err = ReminderInput{Title: &title, Time: &at, Repeat: &custom}.Build(api.ReminderRequest{}, now)
	assert.Error(t, err, "custom needs days")

	req, err = ReminderInput{Title: &title, Time: &at, Repeat: &custom, Days: []string{"thu", "mon"}, DaysSet: true}.Build(api.ReminderRequest{}, now)
	require.NoError(t, err)
	assert.Equal(t, []api.Weekday{"Mon", "Thu"}, req.Days)

	req, err = ReminderInput{Repeat: &daily}.Build(req, now)
	require.NoError(t, err)
	assert.Nil(t, req.Days, "days only kept for custom repeats")

	_, err = ParseReminderTime("tomorrow", now)
	assert.Error(t, err)
	got, err := ParseReminderTime("2025-03-05 07:15", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-05T07:15:00Z", got)
}

func TestGroupTodos(t *testing.T) {
	h1 := "h1"
	gone := "gone"
	groups := GroupTodos(
		[]api.TodoHeading{{ID: "h1", Name: "Home"}, {ID: "h2", Name: "Work"}},
		[]api.Todo{
			{ID: "a", TodoHeadingID: &h1, IsDone: true},
			{ID: "b", TodoHeadingID: &h1},
			{ID: "c"},
			{ID: "d", TodoHeadingID: &gone},
		},
	)
	require.Len(t, groups, 3)
	assert.Equal(t, "b", groups[0].Todos[0].ID, "open todos first")
	assert.Empty(t, groups[1].Todos)
	assert.Nil(t, groups[2].Heading)
	assert.Len(t, groups[2].Todos, 2)
}

func TestTodoDoneKeepsTitle(t *testing.T) {
	f := newFixture(t, "", map[string]route{
		"GET /todos/t1": ok(`{"id":"t1","title":"Milk","isDone":false}`),
	})
	require.NoError(t, NewTodoService(f.env).SetDone(context.Background(), "t1", true))

	puts := f.be.Calls("PUT /todos/t1")
	require.Len(t, puts, 1)
	assert.Equal(t, "Milk", puts[0].Body["title"])
	assert.Equal(t, true, puts[0].Body["isDone"])
}

func TestSummarize(t *testing.T) {
	totals := Summarize([]api.StepDatum{
		{Date: "2025-03-01", Count: 2},
		{Date: "2025-03-02"},
		{Date: "2025-03-03", Count: 1, Kudos: 1},
	})
	assert.Equal(t, Totals{Days: 3, Active: 2, Count: 3, Kudos: 1}, totals)
}

func TestParseDays(t *testing.T) {
	days, err := parseDays([]string{"Sunday, mon", "wed"})
	require.NoError(t, err)
	assert.Equal(t, []api.Weekday{"Mon", "Wed", "Sun"}, days)

	_, err = parseDays([]string{"someday"})
	assert.Error(t, err)
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/client"
)

type call struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// fakeBackend records requests and answers from a route table.
type fakeBackend struct {
	calls  []call
	routes map[string]func(w http.ResponseWriter)
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := call{Method: r.Method, Path: r.URL.Path}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &c.Body)
	}
	f.calls = append(f.calls, c)

	w.Header().Set("Content-Type", "application/json")
	if h, ok := f.routes[r.Method+" "+r.URL.Path]; ok {
		h(w)
		return
	}
	_, _ = w.Write([]byte(`{}`))
}

func reply(status int, body string) func(http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newTestClient(t *testing.T, routes map[string]func(http.ResponseWriter)) (*Client, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{routes: routes}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	return New(client.New(client.Options{BaseURL: srv.URL + "/"})), fb
}

func TestListSteps(t *testing.T) {
	c, fb := newTestClient(t, map[string]func(http.ResponseWriter){
		"GET /targetSteps": reply(200, `[
			{"id":"s1","title":"Run","type":"count","days":["Mon","Wed"],"status":"active",
			 "targetHeadingId":"h1","targetStepData":[{"date":"2025-03-04","count":"3","kudos":2}]},
			{"id":"s2","title":"Read","type":"bool","targetStepData":[{"date":"2025-03-04","count":true,"kudos":null}]}
		]`),
	})

	steps, err := c.ListSteps(context.Background())
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, "h1", steps[0].HeadingID())
	assert.Equal(t, StepCount, steps[0].Type)
	assert.Equal(t, []Weekday{"Mon", "Wed"}, steps[0].Days)
	d, ok := steps[0].Latest()
	require.True(t, ok)
	assert.Equal(t, Number(3), d.Count)
	assert.Equal(t, Number(2), d.Kudos)

	d, ok = steps[1].Latest()
	require.True(t, ok)
	assert.Equal(t, Number(1), d.Count)
	assert.Equal(t, "", steps[1].HeadingID())

	require.Len(t, fb.calls, 1)
	assert.Equal(t, "/targetSteps", fb.calls[0].Path)
}

func TestRecordStepData(t *testing.T) {
	c, fb := newTestClient(t, nil)

	err := c.RecordStepData(context.Background(), "s1", StepDataRequest{Date: "2025-03-04", Count: 4})
	require.NoError(t, err)

	require.Len(t, fb.calls, 1)
	assert.Equal(t, http.MethodPost, fb.calls[0].Method)
	assert.Equal(t, "/targetSteps/s1/data", fb.calls[0].Path)
	assert.Equal(t, "2025-03-04", fb.calls[0].Body["date"])
	assert.Equal(t, float64(4), fb.calls[0].Body["count"])
}

func TestToggleHeading(t *testing.T) {
	c, fb := newTestClient(t, nil)

	require.NoError(t, c.ToggleHeading(context.Background(), "h1", false))

	require.Len(t, fb.calls, 1)
	assert.Equal(t, http.MethodPatch, fb.calls[0].Method)
	assert.Equal(t, "/targetHeadings/h1/toggle", fb.calls[0].Path)
	assert.Equal(t, false, fb.calls[0].Body["isExpanded"])
}

func TestServerErrorMessageSurfaced(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(http.ResponseWriter){
		"POST /userFriends": reply(400, `{"error":"Already friends"}`),
	})

	err := c.AddFriend(context.Background(), "u2")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "Already friends", Message(err, "Failed to add friend"))
}

func TestErrorWithoutBodyUsesFallback(t *testing.T) {
	c, _ := newTestClient(t, map[string]func(http.ResponseWriter){
		"DELETE /targetSteps/s9": reply(500, `oops`),
	})

	err := c.DeleteStep(context.Background(), "s9")
	require.Error(t, err)
	assert.True(t, IsServerError(err))
	assert.Equal(t, "Failed to delete step", Message(err, "Failed to delete step"))
}

func TestReminderDaysOnlyForCustom(t *testing.T) {
	c, fb := newTestClient(t, nil)
	ctx := context.Background()

	_, err := c.CreateReminder(ctx, ReminderRequest{Title: "Water", Time: "2025-03-04T08:00:00Z", Repeat: RepeatDaily, Days: []Weekday{"Mon"}})
	require.NoError(t, err)
	_, err = c.CreateReminder(ctx, ReminderRequest{Title: "Gym", Time: "2025-03-04T18:00:00Z", Repeat: RepeatCustom, Days: []Weekday{"Mon", "Thu"}})
	require.NoError(t, err)

	require.Len(t, fb.calls, 2)
	_, hasDays := fb.calls[0].Body["days"]
	assert.False(t, hasDays)
	assert.Equal(t, []interface{}{"Mon", "Thu"}, fb.calls[1].Body["days"])
}

func TestFeedbackPaths(t *testing.T) {
	c, fb := newTestClient(t, map[string]func(http.ResponseWriter){
		"GET /feedback": reply(200, `[{"id":"f1","title":"Broken","tag":"bug","status":"open","userId":"u1"}]`),
	})
	ctx := context.Background()

	items, err := c.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, FeedbackTag("bug"), items[0].Tag)

	require.NoError(t, c.UpdateFeedbackStatus(ctx, "f1", "fixed"))
	assert.Equal(t, "/feedback/f1/status", fb.calls[1].Path)
	assert.Equal(t, "fixed", fb.calls[1].Body["status"])
}

func TestReportPath(t *testing.T) {
	c, fb := newTestClient(t, map[string]func(http.ResponseWriter){
		"GET /reports/targetStep/s1/month": reply(200, `{"targetStepData":[{"date":"2025-03-01","count":1,"kudos":0}]}`),
	})

	report, err := c.GetReport(context.Background(), "s1", PeriodMonth)
	require.NoError(t, err)
	assert.Len(t, report.TargetStepData, 1)
	assert.Equal(t, "/reports/targetStep/s1/month", fb.calls[0].Path)
}

func TestTodoHeadingDefaultColor(t *testing.T) {
	c, fb := newTestClient(t, nil)

	_, err := c.CreateTodoHeading(context.Background(), TodoHeadingRequest{Name: "Home"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTodoHeadingColor, fb.calls[0].Body["color"])
}

func TestParseHelpers(t *testing.T) {
	st, ok := ParseStepStatus(" Suspended ")
	assert.True(t, ok)
	assert.Equal(t, StatusSuspended, st)
	assert.False(t, st.Tracked())

	_, ok = ParseStepStatus("archived")
	assert.False(t, ok)

	d, ok := ParseWeekday("tuesday")
	assert.True(t, ok)
	assert.Equal(t, Weekday("Tue"), d)

	_, ok = ParsePeriod("decade")
	assert.False(t, ok)

	h := Heading{}
	assert.True(t, h.Expanded())
	closed := false
	h.IsExpanded = &closed
	assert.False(t, h.Expanded())
}

func TestNumberRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{`"NaN"`, `"Inf"`, `"-Infinity"`, `"1e400"`} {
		var n Number
		assert.Error(t, json.Unmarshal([]byte(raw), &n), raw)
	}

	var d StepDatum
	require.NoError(t, json.Unmarshal([]byte(`{"count":"4.9","kudos":true}`), &d))
	assert.Equal(t, 4, d.Count.Int())
	assert.Equal(t, 1, d.Kudos.Int())

	assert.Equal(t, 0, Number(math.NaN()).Int())
	assert.Equal(t, 0, Number(math.Inf(-1)).Int())
	assert.Equal(t, math.MaxInt, Number(math.Inf(1)).Int())
	assert.Equal(t, math.MaxInt, Number(1e300).Int())
}

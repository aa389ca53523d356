package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
)

func init() {
	color.NoColor = true
}

func TestDays(t *testing.T) {
	tests := []struct {
		days []api.Weekday
		want string
	}{
		{nil, "Every day"},
		{[]api.Weekday{"Mon"}, "Mon"},
		{[]api.Weekday{"Mon", "Wed", "Fri"}, "Mon, Wed, Fri"},
	}
	for _, tt := range tests {
		if got := Days(tt.days); got != tt.want {
			t.Errorf("Days(%v) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"longer title", 6, "longe…"},
		{"héllo wörld", 4, "hél…"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestTimeFallsBack(t *testing.T) {
	if got := Time("not a time"); got != "not a time" {
		t.Errorf("Time() = %q", got)
	}
	if got := Time("2025-03-04T08:00:00Z"); got == "2025-03-04T08:00:00Z" {
		t.Errorf("Time() did not reformat: %q", got)
	}
}

func TestNotifySink(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewCenter()
	c.Subscribe(NotifySink(&buf))

	c.Notify("Saved", notify.Success)
	c.Notify("Saved", notify.Success)
	c.Notify("Nope", notify.Error)

	if got := strings.Count(buf.String(), "Saved"); got != 1 {
		t.Errorf("duplicate notification printed %d times", got)
	}
	if !strings.Contains(buf.String(), "Nope") {
		t.Errorf("missing error line: %q", buf.String())
	}
}

func TestViewRows(t *testing.T) {
	steps := []api.Step{
		{ID: "s1", Title: "Run", Type: api.StepCount, TargetStepData: []api.StepDatum{{Count: 2}}},
		{ID: "s2", Title: "Read", Type: api.StepBool, Days: []api.Weekday{"Mon"}, TargetStepData: []api.StepDatum{{Count: 1}}},
	}
	rows := ViewRows(tracker.ReadOnly(steps, "Tue"))
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "Others" || rows[1][0] != "" {
		t.Errorf("heading column = %q, %q", rows[0][0], rows[1][0])
	}
	if rows[0][4] != "2" {
		t.Errorf("count value = %q", rows[0][4])
	}
	if rows[1][4] != tracker.LabelKudos {
		t.Errorf("bool value = %q", rows[1][4])
	}
	if !strings.HasSuffix(rows[1][1], "Read") {
		t.Errorf("title = %q", rows[1][1])
	}
}

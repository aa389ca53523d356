package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/icons"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
)

var (
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
	Kudos   = color.New(color.FgMagenta, color.Bold)
	Faint   = color.New(color.Faint)
)

// SeverityColor returns the color a notification is printed in.
func SeverityColor(s notify.Severity) *color.Color {
	switch s {
	case notify.Error:
		return Error
	case notify.Warning:
		return Warning
	case notify.Info:
		return Info
	default:
		return Success
	}
}

// Notification renders one notification as a single colored line.
func Notification(n notify.Notification) string {
	return SeverityColor(n.Severity).Sprint(n.Message)
}

// NotifySink prints every notification to w.
func NotifySink(w io.Writer) notify.Sink {
	return func(n notify.Notification) {
		fmt.Fprintln(w, Notification(n))
	}
}

// StepValue renders a step's current value with its tone.
func StepValue(d tracker.Display) string {
	switch d.Tone {
	case tracker.ToneKudos:
		return Kudos.Sprint(d.Label)
	case tracker.ToneZero:
		return Faint.Sprint(d.Label)
	case tracker.ToneStatus:
		return Warning.Sprint(d.Label)
	}
	return Success.Sprint(d.Label)
}

// StepMarker flags unsaved and failed steps.
func StepMarker(sv tracker.StepView) string {
	switch {
	case sv.WriteErr:
		return Error.Sprint("!")
	case sv.Dirty:
		return Warning.Sprint("*")
	}
	return ""
}

// StepTitle prefixes the title with its icon glyph.
func StepTitle(s api.Step) string {
	name, _ := icons.Parse(s.Icon)
	return name.Glyph() + " " + s.Title
}

// Days lists weekdays, or "Every day" when none are set.
func Days(days []api.Weekday) string {
	if len(days) == 0 {
		return "Every day"
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}

// Check renders a done flag.
func Check(done bool) string {
	if done {
		return Success.Sprint("[x]")
	}
	return "[ ]"
}

// Time renders an RFC 3339 timestamp in local time, or the raw string when
// it does not parse.
func Time(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Local().Format("Mon Jan 2 15:04")
}

// Truncate shortens s to n runes with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// ViewRows flattens a tracker view into table rows:
// heading, step, type, days, value.
func ViewRows(v tracker.View) [][]string {
	var rows [][]string
	for _, g := range v.Groups {
		name := g.Heading.Name
		if !g.Expanded {
			name += " (collapsed)"
		}
		if len(g.Steps) == 0 {
			rows = append(rows, []string{Bold.Sprint(name), Faint.Sprint("no steps"), "", "", ""})
			continue
		}
		for i, sv := range g.Steps {
			heading := ""
			if i == 0 {
				heading = Bold.Sprint(name)
			}
			rows = append(rows, []string{
				heading,
				StepTitle(sv.Step),
				string(sv.Step.Type),
				Days(sv.Step.Days),
				StepValue(sv.Display) + StepMarker(sv),
			})
		}
	}
	return rows
}

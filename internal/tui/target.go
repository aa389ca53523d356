package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/icons"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
)

type row struct {
	group int
	// step is -1 on heading rows.
	step int
}

func (r row) heading() bool { return r.step < 0 }

// targetRows flattens a view into selectable rows. Steps of collapsed
// groups are hidden.
func targetRows(v tracker.View) []row {
	var rows []row
	for gi, g := range v.Groups {
		rows = append(rows, row{group: gi, step: -1})
		if !g.Expanded {
			continue
		}
		for si := range g.Steps {
			rows = append(rows, row{group: gi, step: si})
		}
	}
	return rows
}

var menuEntries = []string{"Toggle edit mode", "Add step", "Add heading"}

func (m Model) selected() (tracker.View, row, bool) {
	v := m.tracker.Snapshot()
	rows := targetRows(v)
	if m.cursor < 0 || m.cursor >= len(rows) {
		return v, row{}, false
	}
	return v, rows[m.cursor], true
}

func (m Model) targetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	if m.tracker == nil {
		return m, nil
	}

	if m.menuOpen {
		switch {
		case key.Matches(msg, k.Back), key.Matches(msg, k.Menu):
			m.menuOpen = false
		case key.Matches(msg, k.Up):
			if m.menuPos > 0 {
				m.menuPos--
			}
		case key.Matches(msg, k.Down):
			if m.menuPos < len(menuEntries)-1 {
				m.menuPos++
			}
		case key.Matches(msg, k.Select):
			m.menuOpen = false
			switch m.menuPos {
			case 0:
				m.editMode = !m.editMode
			case 1:
				return m.stepForm(nil)
			case 2:
				return m.headingForm(nil)
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Menu):
		m.menuOpen = true
		m.menuPos = 0
		return m, nil
	case key.Matches(msg, k.Edit):
		m.editMode = !m.editMode
		return m, nil
	case key.Matches(msg, k.Add):
		return m.stepForm(nil)
	case key.Matches(msg, k.AddGroup):
		return m.headingForm(nil)
	case key.Matches(msg, k.Save):
		t := m.tracker
		return m, func() tea.Msg {
			_ = t.SaveAll(m.ctx)
			return nil
		}
	case key.Matches(msg, k.Up), key.Matches(msg, k.Down):
		return m.moveCursor(msg, len(targetRows(m.tracker.Snapshot()))), nil
	}

	v, r, ok := m.selected()
	if !ok {
		return m, nil
	}
	g := v.Groups[r.group]

	if r.heading() {
		switch {
		case key.Matches(msg, k.Select) && m.editMode && !g.Others:
			h := g.Heading
			return m.headingForm(&h)
		case key.Matches(msg, k.Select):
			m.report(m.tracker.ToggleHeading(g.Heading.ID))
		case key.Matches(msg, k.Delete) && m.editMode && !g.Others:
			return m.confirmDelete(fmt.Sprintf("Delete heading %q?", g.Heading.Name),
				"Failed to delete heading", "Heading deleted",
				func(ctx context.Context) error { return m.app.API.DeleteHeading(ctx, g.Heading.ID) })
		}
		return m, nil
	}

	sv := g.Steps[r.step]
	id := sv.Step.ID
	switch {
	case key.Matches(msg, k.Select) && m.editMode:
		step := sv.Step
		return m.stepForm(&step)
	case key.Matches(msg, k.Delete) && m.editMode:
		return m.confirmDelete(fmt.Sprintf("Delete step %q?", sv.Step.Title),
			"Failed to delete step", "Step deleted",
			func(ctx context.Context) error { return m.app.API.DeleteStep(ctx, id) })
	case m.editMode:
	case key.Matches(msg, k.Select):
		if sv.Step.Type == api.StepBool {
			m.report(m.tracker.Toggle(id))
		} else {
			m.report(m.tracker.Increment(id))
		}
	case key.Matches(msg, k.Inc):
		m.report(m.tracker.Increment(id))
	case key.Matches(msg, k.Dec):
		m.report(m.tracker.Decrement(id))
	}
	return m, nil
}

// report surfaces a rejected local edit.
func (m Model) report(err error) {
	if err != nil {
		m.app.Notify.Notify(err.Error(), notify.Warning)
	}
}

func (m Model) confirmDelete(prompt, fallback, success string, fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	confirmed := new(bool)
	return m.showForm(confirmForm(prompt, confirmed), func() tea.Cmd {
		if !*confirmed {
			return nil
		}
		return m.mutation(fallback, success, m.view, fn)
	})
}

func (m Model) headingForm(h *api.Heading) (tea.Model, tea.Cmd) {
	in := &headingInput{}
	if h != nil {
		in.Name, in.Color = h.Name, h.Color
	}
	return m.showForm(newHeadingForm(in), func() tea.Cmd {
		req := api.HeadingRequest{Name: strings.TrimSpace(in.Name), Color: strings.TrimSpace(in.Color)}
		if h == nil {
			return m.mutation("Failed to add heading", "Heading added", viewTarget, func(ctx context.Context) error {
				_, err := m.app.API.CreateHeading(ctx, req)
				return err
			})
		}
		id := h.ID
		return m.mutation("Failed to update heading", "Heading updated", viewTarget, func(ctx context.Context) error {
			_, err := m.app.API.UpdateHeading(ctx, id, req)
			return err
		})
	})
}

func (m Model) stepForm(step *api.Step) (tea.Model, tea.Cmd) {
	var headings []api.Heading
	for _, g := range m.tracker.Snapshot().Groups {
		if !g.Others {
			headings = append(headings, g.Heading)
		}
	}

	in := newStepInput(step)
	return m.showForm(newStepForm(in, headings, step == nil), func() tea.Cmd {
		if step == nil {
			req, err := in.Build(api.StepRequest{}, true)
			if err != nil {
				m.app.Notify.Notify(err.Error(), notify.Error)
				return nil
			}
			return m.mutation("Failed to add step", "Step added", viewTarget, func(ctx context.Context) error {
				_, err := m.app.API.CreateStep(ctx, req)
				return err
			})
		}
		base := api.StepRequest{
			Title:           step.Title,
			Description:     step.Description,
			IsPublic:        step.IsPublic,
			TargetHeadingID: step.TargetHeadingID,
			Icon:            step.Icon,
			Type:            step.Type,
			Days:            step.Days,
		}
		req, err := in.Build(base, false)
		if err != nil {
			m.app.Notify.Notify(err.Error(), notify.Error)
			return nil
		}
		id := step.ID
		return m.mutation("Failed to update step", "Step updated", viewTarget, func(ctx context.Context) error {
			_, err := m.app.API.UpdateStep(ctx, id, req)
			return err
		})
	})
}

type renderMode int

const (
	modeTrack renderMode = iota
	modeEdit
	modeReadOnly
)

// renderTarget draws grouped steps. cursor < 0 draws no selection.
func renderTarget(v tracker.View, cursor int, mode renderMode) string {
	if !v.Loaded {
		return faintStyle.Render("Loading…")
	}
	if v.Empty() {
		if mode == modeReadOnly {
			return faintStyle.Render("No public targets")
		}
		return faintStyle.Render("No targets yet. Press a to add a step.")
	}

	var b strings.Builder
	for i, r := range targetRows(v) {
		pointer := "  "
		if i == cursor {
			pointer = cursorStyle.Render("> ")
		}
		g := v.Groups[r.group]
		if r.heading() {
			arrow := "▾"
			if !g.Expanded {
				arrow = "▸"
			}
			name := g.Heading.Name
			if mode == modeEdit && !g.Others {
				name += " ✎"
			}
			b.WriteString(pointer + headingStyle(g).Render(arrow+" "+name) + "\n")
			continue
		}
		sv := g.Steps[r.step]
		b.WriteString(pointer + "  " + stepLine(sv, mode) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func stepLine(sv tracker.StepView, mode renderMode) string {
	name, _ := icons.Parse(sv.Step.Icon)
	title := fmt.Sprintf("%s %-24s", name.Glyph(), sv.Step.Title)

	style := toneStyle(sv.Display.Tone)
	var control string
	switch {
	case mode == modeEdit:
		control = faintStyle.Render("[edit]")
	case mode == modeReadOnly || !sv.Display.Controls:
		control = style.Render(sv.Display.Label)
	case sv.Step.Type == api.StepBool:
		control = style.Render("[" + sv.Display.Label + "]")
	default:
		control = faintStyle.Render("- ") + style.Render(sv.Display.Label) + faintStyle.Render(" +")
	}

	var marker string
	switch {
	case sv.WriteErr:
		marker = dangerStyle.Render(" !")
	case sv.Dirty:
		marker = warningStyle.Render(" *")
	}
	return title + " " + control + marker
}

func (m Model) viewTarget() string {
	if m.tracker == nil {
		return ""
	}
	v := m.tracker.Snapshot()

	header := fmt.Sprintf("Today · %s %s", v.Weekday, v.Today)
	if m.tracker.HasUnsaved() {
		header += warningStyle.Render("  unsaved changes (s to save)")
	}
	if m.editMode {
		header += warningStyle.Render("  edit mode")
	}

	mode := modeTrack
	if m.editMode {
		mode = modeEdit
	}
	body := renderTarget(v, m.cursor, mode)

	if m.menuOpen {
		var items []string
		for i, e := range menuEntries {
			if i == m.menuPos {
				items = append(items, cursorStyle.Render("> "+e))
			} else {
				items = append(items, "  "+e)
			}
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", menuStyle.Render(strings.Join(items, "\n")))
	}
	return titleStyle.Render(header) + "\n" + body
}

func (m Model) viewFriendToday() string {
	if m.friend == nil {
		return ""
	}
	header := fmt.Sprintf("%s · today (read-only)", m.friend.name)
	return titleStyle.Render(header) + "\n" + renderTarget(m.friend.view, m.cursor, modeReadOnly)
}

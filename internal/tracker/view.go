package tracker

import (
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
)

// StepView is a read-only copy of one step's state.
type StepView struct {
	Step     api.Step
	Tracked  bool
	Pending  int
	Synced   int
	Dirty    bool
	WriteErr bool
	Display  Display
}

// GroupView is a read-only copy of one group.
type GroupView struct {
	Heading  api.Heading
	Others   bool
	Expanded bool
	Steps    []StepView
}

// View is a consistent snapshot of the whole model.
type View struct {
	Loaded  bool
	Today   string
	Weekday api.Weekday
	Groups  []GroupView
}

// Empty reports whether there is nothing to show.
func (v View) Empty() bool {
	return len(v.Groups) == 0
}

// Snapshot copies the current model for rendering.
func (t *Tracker) Snapshot() View {
	today := t.Weekday()

	t.mu.Lock()
	defer t.mu.Unlock()

	v := View{
		Loaded:  t.loaded,
		Today:   t.Today(),
		Weekday: today,
		Groups:  make([]GroupView, 0, len(t.groups)),
	}
	for _, g := range t.groups {
		gv := GroupView{
			Heading:  g.heading,
			Others:   g.others,
			Expanded: t.expanded[g.heading.ID],
			Steps:    make([]StepView, 0, len(g.stepIDs)),
		}
		for _, id := range g.stepIDs {
			s, ok := t.steps[id]
			if !ok {
				continue
			}
			gv.Steps = append(gv.Steps, StepView{
				Step:     s.step,
				Tracked:  s.tracked,
				Pending:  s.pending,
				Synced:   s.synced,
				Dirty:    s.tracked && s.pending != s.synced,
				WriteErr: s.writeErr,
				Display:  Derive(s.step, s.pending, today),
			})
		}
		v.Groups = append(v.Groups, gv)
	}
	return v
}

// ReadOnly builds a snapshot of someone else's steps. Nothing in it can be
// edited or written back.
func ReadOnly(steps []api.Step, today api.Weekday) View {
	v := View{Loaded: true, Weekday: today}
	for _, g := range GroupFriendSteps(steps) {
		gv := GroupView{Heading: g.Heading, Others: g.Others, Expanded: true}
		for _, s := range g.Steps {
			seed := Seed(s)
			d := Derive(s, seed, today)
			d.Controls = false
			gv.Steps = append(gv.Steps, StepView{
				Step:    s,
				Tracked: Tracked(s),
				Pending: seed,
				Synced:  seed,
				Display: d,
			})
		}
		v.Groups = append(v.Groups, gv)
	}
	return v
}

package service

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/formatter"
)

// TargetService drives today's habit tracker from one-shot commands.
type TargetService struct {
	*Env
}

// NewTargetService creates a new target service
func NewTargetService(env *Env) *TargetService {
	return &TargetService{Env: env}
}

// Op is a one-shot edit of a step's value.
type Op int

const (
	OpIncrement Op = iota
	OpDecrement
	OpSet
	OpToggle
)

var viewHeaders = []string{"HEADING", "STEP", "TYPE", "DAYS", "TODAY"}

// open resolves the session and loads a tracker. The caller must Close it.
func (s *TargetService) open(ctx context.Context) (*tracker.Tracker, error) {
	if _, err := s.require(ctx); err != nil {
		return nil, err
	}
	t := s.NewTracker()
	if err := t.Load(ctx); err != nil {
		t.Close()
		// Load already notified.
		return nil, reported(err)
	}
	return t, nil
}

// List prints today's grouped steps.
func (s *TargetService) List(ctx context.Context) error {
	t, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer t.Close()

	v := t.Snapshot()
	if v.Empty() {
		s.Out.Info("No targets yet. Add one with 'deserve step add'")
		return nil
	}
	return s.Out.List(fmt.Sprintf("Targets for %s (%s)", v.Today, v.Weekday), v, viewHeaders, formatter.ViewRows(v))
}

// Apply edits one step and waits for the write to land before returning.
func (s *TargetService) Apply(ctx context.Context, ref string, op Op, n int) error {
	t, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer t.Close()

	id, err := t.FindStep(ref)
	if err != nil {
		return err
	}

	switch op {
	case OpIncrement:
		err = t.Increment(id)
	case OpDecrement:
		err = t.Decrement(id)
	case OpSet:
		err = t.SetValue(id, n)
	case OpToggle:
		err = t.Toggle(id)
	default:
		err = fmt.Errorf("unknown operation %d", op)
	}
	if err != nil {
		return err
	}

	if err := t.Flush(ctx); err != nil {
		return err
	}

	sv, ok := findStep(t.Snapshot(), id)
	if !ok {
		return nil
	}
	if sv.WriteErr {
		// The write notified already.
		return reported(fmt.Errorf("failed to save %s", sv.Step.Title))
	}
	s.Out.Success("%s: %s", sv.Step.Title, formatter.StepValue(sv.Display))
	return nil
}

// ToggleHeading flips a heading's expansion and persists it.
func (s *TargetService) ToggleHeading(ctx context.Context, ref string) error {
	t, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer t.Close()

	id, err := t.FindHeading(ref)
	if err != nil {
		return err
	}
	if err := t.ToggleHeading(id); err != nil {
		return err
	}
	if err := t.Flush(ctx); err != nil {
		return err
	}

	state := "collapsed"
	if t.Expanded(id) {
		state = "expanded"
	}
	s.Out.Success("Heading %s", state)
	return nil
}

func findStep(v tracker.View, id string) (tracker.StepView, bool) {
	for _, g := range v.Groups {
		for _, sv := range g.Steps {
			if sv.Step.ID == id {
				return sv, true
			}
		}
	}
	return tracker.StepView{}, false
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/formatter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/icons"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
)

// StepService manages target steps.
type StepService struct {
	*Env
}

// NewStepService creates a new step service
func NewStepService(env *Env) *StepService {
	return &StepService{Env: env}
}

// StepInput carries step fields from flags or forms. Nil pointers mean
// "leave unchanged" on edit.
type StepInput struct {
	Title       *string
	Description *string
	Type        *string
	Days        []string
	DaysSet     bool
	Public      *bool
	Heading     *string
	Icon        *string
}

// Build turns the input into a request on top of base. Type is only read
// when creating; a step's type never changes afterwards.
func (in StepInput) Build(base api.StepRequest, creating bool) (api.StepRequest, error) {
	req := base
	if in.Title != nil {
		req.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		req.Description = strings.TrimSpace(*in.Description)
	}
	if in.Public != nil {
		req.IsPublic = *in.Public
	}
	if in.Heading != nil {
		if h := strings.TrimSpace(*in.Heading); h == "" {
			req.TargetHeadingID = nil
		} else {
			req.TargetHeadingID = &h
		}
	}
	if in.Icon != nil {
		name, ok := icons.Parse(*in.Icon)
		if !ok && strings.TrimSpace(*in.Icon) != "" {
			return req, fmt.Errorf("unknown icon %q (try 'deserve icons %s')", *in.Icon, *in.Icon)
		}
		req.Icon = string(name)
	}
	if in.DaysSet {
		days, err := parseDays(in.Days)
		if err != nil {
			return req, err
		}
		req.Days = days
	}

	if creating {
		typ := api.StepCount
		if in.Type != nil {
			switch t := api.StepType(strings.ToLower(strings.TrimSpace(*in.Type))); t {
			case api.StepBool, api.StepCount:
				typ = t
			default:
				return req, fmt.Errorf("invalid step type %q: use bool or count", *in.Type)
			}
		}
		req.Type = typ
		if req.Icon == "" {
			req.Icon = string(icons.Default)
		}
	} else if in.Type != nil && api.StepType(*in.Type) != base.Type {
		return req, errors.New("a step's type cannot be changed")
	}

	if req.Title == "" {
		return req, errors.New("step title cannot be empty")
	}
	return req, nil
}

func requestFrom(s *api.Step) api.StepRequest {
	return api.StepRequest{
		Title:           s.Title,
		Description:     s.Description,
		IsPublic:        s.IsPublic,
		TargetHeadingID: s.TargetHeadingID,
		Icon:            s.Icon,
		Type:            s.Type,
		Days:            s.Days,
	}
}

// List prints every step.
func (s *StepService) List(ctx context.Context) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var steps []api.Step
	if err := s.call(ctx, "Failed to load steps", func(ctx context.Context) error {
		var err error
		steps, err = s.API.ListSteps(ctx)
		return err
	}); err != nil {
		return err
	}

	rows := make([][]string, 0, len(steps))
	for _, st := range steps {
		rows = append(rows, []string{st.ID, formatter.StepTitle(st), string(st.Type), formatter.Days(st.Days), string(st.Status), yesNo(st.IsPublic)})
	}
	return s.Out.List("Steps", steps, []string{"ID", "TITLE", "TYPE", "DAYS", "STATUS", "PUBLIC"}, rows)
}

// Show prints one step.
func (s *StepService) Show(ctx context.Context, id string) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var st *api.Step
	if err := s.call(ctx, "Failed to load step", func(ctx context.Context) error {
		var err error
		st, err = s.API.GetStep(ctx, id)
		return err
	}); err != nil {
		return err
	}

	heading := st.HeadingID()
	if st.TargetHeading != nil {
		heading = st.TargetHeading.Name
	}
	return s.Out.Record(formatter.StepTitle(*st), st, []output.Field{
		{Key: "ID", Value: st.ID},
		{Key: "Description", Value: st.Description},
		{Key: "Type", Value: st.Type},
		{Key: "Days", Value: formatter.Days(st.Days)},
		{Key: "Status", Value: st.Status},
		{Key: "Public", Value: yesNo(st.IsPublic)},
		{Key: "Heading", Value: heading},
		{Key: "Icon", Value: st.Icon},
	})
}

// Add creates a step.
func (s *StepService) Add(ctx context.Context, in StepInput) error {
	req, err := in.Build(api.StepRequest{}, true)
	if err != nil {
		return err
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var st *api.Step
	if err := s.call(ctx, "Failed to add step", func(ctx context.Context) error {
		var err error
		st, err = s.API.CreateStep(ctx, req)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify("Step added", "")
	return s.Out.Record("", st, []output.Field{{Key: "ID", Value: st.ID}, {Key: "Title", Value: st.Title}})
}

// Edit changes the given fields of a step.
func (s *StepService) Edit(ctx context.Context, id string, in StepInput) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var buildErr error
	err := s.call(ctx, "Failed to update step", func(ctx context.Context) error {
		cur, err := s.API.GetStep(ctx, id)
		if err != nil {
			return err
		}
		req, err := in.Build(requestFrom(cur), false)
		if err != nil {
			buildErr = err
			return nil
		}
		_, err = s.API.UpdateStep(ctx, id, req)
		return err
	})
	if err != nil {
		return err
	}
	if buildErr != nil {
		return buildErr
	}
	s.Notify.Notify("Step updated", "")
	return nil
}

// SetStatus activates, suspends or completes a step.
func (s *StepService) SetStatus(ctx context.Context, id, status string) error {
	st, ok := api.ParseStepStatus(status)
	if !ok {
		return fmt.Errorf("invalid status %q: use active, suspended or completed", status)
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to update status", func(ctx context.Context) error {
		return s.API.UpdateStepStatus(ctx, id, st)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Status updated to "+string(st), "")
	return nil
}

// Delete removes a step and its history.
func (s *StepService) Delete(ctx context.Context, id string, force bool) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.confirm(force, "Delete step %s and all its data?", id); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to delete step", func(ctx context.Context) error {
		return s.API.DeleteStep(ctx, id)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Step deleted", "")
	return nil
}

// Icons prints icon names matching query.
func (s *StepService) Icons(query string) error {
	names := icons.Search(query)
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{n.Glyph(), string(n)})
	}
	return s.Out.List("Icons", names, []string{"", "NAME"}, rows)
}

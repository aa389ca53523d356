package service

import (
	"context"
	"errors"
	"strings"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
)

// HeadingService manages target headings.
type HeadingService struct {
	*Env
}

// NewHeadingService creates a new heading service
func NewHeadingService(env *Env) *HeadingService {
	return &HeadingService{Env: env}
}

// List prints every heading.
func (s *HeadingService) List(ctx context.Context) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var headings []api.Heading
	if err := s.call(ctx, "Failed to load headings", func(ctx context.Context) error {
		var err error
		headings, err = s.API.ListHeadings(ctx)
		return err
	}); err != nil {
		return err
	}

	rows := make([][]string, 0, len(headings))
	for _, h := range headings {
		rows = append(rows, []string{h.ID, h.Name, h.Color, yesNo(h.Expanded())})
	}
	return s.Out.List("Headings", headings, []string{"ID", "NAME", "COLOR", "EXPANDED"}, rows)
}

// Show prints one heading.
func (s *HeadingService) Show(ctx context.Context, id string) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var h *api.Heading
	if err := s.call(ctx, "Failed to load heading", func(ctx context.Context) error {
		var err error
		h, err = s.API.GetHeading(ctx, id)
		return err
	}); err != nil {
		return err
	}
	return s.Out.Record("Heading", h, []output.Field{
		{Key: "ID", Value: h.ID},
		{Key: "Name", Value: h.Name},
		{Key: "Color", Value: h.Color},
		{Key: "Expanded", Value: yesNo(h.Expanded())},
	})
}

// Add creates a heading.
func (s *HeadingService) Add(ctx context.Context, name, color string) error {
	req := api.HeadingRequest{Name: strings.TrimSpace(name), Color: strings.TrimSpace(color)}
	if req.Name == "" {
		return errors.New("heading name cannot be empty")
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var h *api.Heading
	if err := s.call(ctx, "Failed to add heading", func(ctx context.Context) error {
		var err error
		h, err = s.API.CreateHeading(ctx, req)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify("Heading added", "")
	return s.Out.Record("", h, []output.Field{{Key: "ID", Value: h.ID}, {Key: "Name", Value: h.Name}})
}

// Edit renames or recolors a heading. Empty values keep the current ones.
func (s *HeadingService) Edit(ctx context.Context, id, name, color string) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	return s.call(ctx, "Failed to update heading", func(ctx context.Context) error {
		cur, err := s.API.GetHeading(ctx, id)
		if err != nil {
			return err
		}
		req := api.HeadingRequest{Name: cur.Name, Color: cur.Color}
		if v := strings.TrimSpace(name); v != "" {
			req.Name = v
		}
		if v := strings.TrimSpace(color); v != "" {
			req.Color = v
		}
		if _, err := s.API.UpdateHeading(ctx, id, req); err != nil {
			return err
		}
		s.Notify.Notify("Heading updated", "")
		return nil
	})
}

// Delete removes a heading. Its steps fall back to Others.
func (s *HeadingService) Delete(ctx context.Context, id string, force bool) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.confirm(force, "Delete heading %s?", id); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to delete heading", func(ctx context.Context) error {
		return s.API.DeleteHeading(ctx, id)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Heading deleted", "")
	return nil
}

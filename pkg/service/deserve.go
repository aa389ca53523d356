package service

import (
	"context"
	"errors"
	"strings"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
)

// DeserveService manages the "do I deserve it" list.
type DeserveService struct {
	*Env
}

// NewDeserveService creates a new deserve service
func NewDeserveService(env *Env) *DeserveService {
	return &DeserveService{Env: env}
}

// List prints every entry.
func (s *DeserveService) List(ctx context.Context) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var entries []api.DeserveEntry
	if err := s.call(ctx, "Failed to load list", func(ctx context.Context) error {
		var err error
		entries, err = s.API.ListDeserve(ctx)
		return err
	}); err != nil {
		return err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.ID, e.Title})
	}
	return s.Out.List("Entries", entries, []string{"ID", "TITLE"}, rows)
}

// Add appends an entry.
func (s *DeserveService) Add(ctx context.Context, title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title cannot be empty")
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to add entry", func(ctx context.Context) error {
		_, err := s.API.CreateDeserve(ctx, title)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify("Entry added", "")
	return nil
}

// Edit renames an entry.
func (s *DeserveService) Edit(ctx context.Context, id, title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title cannot be empty")
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to update entry", func(ctx context.Context) error {
		_, err := s.API.UpdateDeserve(ctx, id, title)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify("Entry updated", "")
	return nil
}

// Delete removes an entry.
func (s *DeserveService) Delete(ctx context.Context, id string, force bool) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.confirm(force, "Delete entry %s?", id); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to delete entry", func(ctx context.Context) error {
		return s.API.DeleteDeserve(ctx, id)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Entry deleted", "")
	return nil
}

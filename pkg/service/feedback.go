package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/formatter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
)

// FeedbackService submits and triages feedback. Changing status is
// reserved for the admin user.
type FeedbackService struct {
	*Env
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(env *Env) *FeedbackService {
	return &FeedbackService{Env: env}
}

// ParseFeedbackTag matches a tag case-insensitively.
func ParseFeedbackTag(s string) (api.FeedbackTag, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range api.FeedbackTags {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// ParseFeedbackStatus matches a status case-insensitively.
func ParseFeedbackStatus(s string) (api.FeedbackStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range api.FeedbackStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// FeedbackMarkdown renders one item for glamour.
func FeedbackMarkdown(f api.Feedback) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", f.Title)
	fmt.Fprintf(&b, "**Tag:** %s", f.Tag)
	if f.Status != "" {
		fmt.Fprintf(&b, " · **Status:** %s", f.Status)
	}
	b.WriteString("\n\n")
	if d := strings.TrimSpace(f.Description); d != "" {
		b.WriteString(d)
		b.WriteString("\n")
	}
	return b.String()
}

// List prints feedback visible to the current user.
func (s *FeedbackService) List(ctx context.Context) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var items []api.Feedback
	if err := s.call(ctx, "Failed to load feedback", func(ctx context.Context) error {
		var err error
		items, err = s.API.ListFeedback(ctx)
		return err
	}); err != nil {
		return err
	}

	rows := make([][]string, 0, len(items))
	for _, f := range items {
		rows = append(rows, []string{f.ID, formatter.Truncate(f.Title, 40), string(f.Tag), string(f.Status)})
	}
	return s.Out.List("Feedback", items, []string{"ID", "TITLE", "TAG", "STATUS"}, rows)
}

// Show renders one item as markdown.
func (s *FeedbackService) Show(ctx context.Context, id string) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var f *api.Feedback
	if err := s.call(ctx, "Failed to load feedback", func(ctx context.Context) error {
		var err error
		f, err = s.API.GetFeedback(ctx, id)
		return err
	}); err != nil {
		return err
	}

	if s.Out.Format != output.FormatText {
		return s.Out.Record("Feedback", f, []output.Field{
			{Key: "ID", Value: f.ID},
			{Key: "Title", Value: f.Title},
			{Key: "Tag", Value: f.Tag},
			{Key: "Status", Value: f.Status},
			{Key: "Description", Value: f.Description},
		})
	}
	s.Out.Markdown(FeedbackMarkdown(*f))
	return nil
}

func buildFeedback(title, description, tag string) (api.FeedbackRequest, error) {
	req := api.FeedbackRequest{Title: strings.TrimSpace(title), Description: strings.TrimSpace(description)}
	if req.Title == "" {
		return req, errors.New("feedback title cannot be empty")
	}
	t, ok := ParseFeedbackTag(tag)
	if !ok {
		return req, fmt.Errorf("invalid tag %q: use one of %s", tag, joinTags())
	}
	req.Tag = t
	return req, nil
}

func joinTags() string {
	parts := make([]string, len(api.FeedbackTags))
	for i, t := range api.FeedbackTags {
		parts[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(parts, ", ")
}

// Add submits feedback.
func (s *FeedbackService) Add(ctx context.Context, title, description, tag string) error {
	req, err := buildFeedback(title, description, tag)
	if err != nil {
		return err
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to submit feedback", func(ctx context.Context) error {
		_, err := s.API.CreateFeedback(ctx, req)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify("Thanks for the feedback!", "")
	return nil
}

// Edit replaces an item's title, description and tag. Empty values keep
// the current ones.
func (s *FeedbackService) Edit(ctx context.Context, id, title, description, tag string) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var buildErr error
	if err := s.call(ctx, "Failed to update feedback", func(ctx context.Context) error {
		cur, err := s.API.GetFeedback(ctx, id)
		if err != nil {
			return err
		}
		if title == "" {
			title = cur.Title
		}
		if description == "" {
			description = cur.Description
		}
		if tag == "" {
			tag = string(cur.Tag)
		}
		req, err := buildFeedback(title, description, tag)
		if err != nil {
			buildErr = err
			return nil
		}
		_, err = s.API.UpdateFeedback(ctx, id, req)
		return err
	}); err != nil {
		return err
	}
	if buildErr != nil {
		return buildErr
	}
	s.Notify.Notify("Feedback updated", "")
	return nil
}

// SetStatus changes an item's status. Only the admin may do this.
func (s *FeedbackService) SetStatus(ctx context.Context, id, status string) error {
	st, ok := ParseFeedbackStatus(status)
	if !ok {
		return fmt.Errorf("invalid status %q", status)
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if !s.Session.IsAdmin() {
		return errors.New("only the admin can change feedback status")
	}
	if err := s.call(ctx, "Failed to update status", func(ctx context.Context) error {
		return s.API.UpdateFeedbackStatus(ctx, id, st)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Status updated", "")
	return nil
}

// Delete removes feedback.
func (s *FeedbackService) Delete(ctx context.Context, id string, force bool) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.confirm(force, "Delete feedback %s?", id); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to delete feedback", func(ctx context.Context) error {
		return s.API.DeleteFeedback(ctx, id)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Feedback deleted", "")
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/formatter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
)

// ReminderService manages reminders. Delivering them is the backend's job.
type ReminderService struct {
	*Env
	now func() time.Time
}

// NewReminderService creates a new reminder service
func NewReminderService(env *Env) *ReminderService {
	return &ReminderService{Env: env, now: time.Now}
}

// ReminderInput carries reminder fields. Nil pointers keep current values on edit.
type ReminderInput struct {
	Title       *string
	Description *string
	Time        *string
	Repeat      *string
	Days        []string
	DaysSet     bool
}

// ParseReminderTime accepts RFC 3339, "YYYY-MM-DD HH:MM" or "HH:MM" (today)
// in local time and returns RFC 3339 in UTC.
func ParseReminderTime(s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, now.Location()); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}
	if t, err := time.ParseInLocation("15:04", s, now.Location()); err == nil {
		at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		return at.UTC().Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("invalid time %q: use HH:MM, 'YYYY-MM-DD HH:MM' or RFC 3339", s)
}

// Build applies the input on top of base.
func (in ReminderInput) Build(base api.ReminderRequest, now time.Time) (api.ReminderRequest, error) {
	req := base
	if in.Title != nil {
		req.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		req.Description = strings.TrimSpace(*in.Description)
	}
	if in.Time != nil {
		t, err := ParseReminderTime(*in.Time, now)
		if err != nil {
			return req, err
		}
		req.Time = t
	}
	if in.Repeat != nil {
		r, ok := api.ParseRepeat(*in.Repeat)
		if !ok {
			return req, fmt.Errorf("invalid repeat %q: use none, daily, weekly or custom", *in.Repeat)
		}
		req.Repeat = r
	}
	if req.Repeat == "" {
		req.Repeat = api.RepeatNone
	}
	if in.DaysSet {
		days, err := parseDays(in.Days)
		if err != nil {
			return req, err
		}
		req.Days = days
	}

	switch {
	case req.Title == "":
		return req, errors.New("reminder title cannot be empty")
	case req.Time == "":
		return req, errors.New("reminder time is required")
	case req.Repeat == api.RepeatCustom && len(req.Days) == 0:
		return req, errors.New("custom repeat needs at least one day")
	}
	if req.Repeat != api.RepeatCustom {
		req.Days = nil
	}
	return req, nil
}

// List prints every reminder.
func (s *ReminderService) List(ctx context.Context) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var reminders []api.Reminder
	if err := s.call(ctx, "Failed to load reminders", func(ctx context.Context) error {
		var err error
		reminders, err = s.API.ListReminders(ctx)
		return err
	}); err != nil {
		return err
	}

	rows := make([][]string, 0, len(reminders))
	for _, r := range reminders {
		repeat := string(r.Repeat)
		if r.Repeat == api.RepeatCustom {
			repeat = formatter.Days(r.Days)
		}
		rows = append(rows, []string{r.ID, r.Title, formatter.Time(r.Time), repeat})
	}
	return s.Out.List("Reminders", reminders, []string{"ID", "TITLE", "TIME", "REPEAT"}, rows)
}

// Add creates a reminder.
func (s *ReminderService) Add(ctx context.Context, in ReminderInput) error {
	req, err := in.Build(api.ReminderRequest{}, s.now())
	if err != nil {
		return err
	}
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var r *api.Reminder
	if err := s.call(ctx, "Failed to add reminder", func(ctx context.Context) error {
		var err error
		r, err = s.API.CreateReminder(ctx, req)
		return err
	}); err != nil {
		return err
	}
	s.Notify.Notify("Reminder added", "")
	return s.Out.Record("", r, []output.Field{{Key: "ID", Value: r.ID}, {Key: "Time", Value: formatter.Time(r.Time)}})
}

// Edit changes the given fields of a reminder.
func (s *ReminderService) Edit(ctx context.Context, id string, in ReminderInput) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var buildErr error
	if err := s.call(ctx, "Failed to update reminder", func(ctx context.Context) error {
		cur, err := s.API.GetReminder(ctx, id)
		if err != nil {
			return err
		}
		base := api.ReminderRequest{Title: cur.Title, Description: cur.Description, Time: cur.Time, Repeat: cur.Repeat, Days: cur.Days}
		req, err := in.Build(base, s.now())
		if err != nil {
			buildErr = err
			return nil
		}
		_, err = s.API.UpdateReminder(ctx, id, req)
		return err
	}); err != nil {
		return err
	}
	if buildErr != nil {
		return buildErr
	}
	s.Notify.Notify("Reminder updated", "")
	return nil
}

// Delete removes a reminder.
func (s *ReminderService) Delete(ctx context.Context, id string, force bool) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.confirm(force, "Delete reminder %s?", id); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to delete reminder", func(ctx context.Context) error {
		return s.API.DeleteReminder(ctx, id)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Reminder deleted", "")
	return nil
}

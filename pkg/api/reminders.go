package api

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// ListReminders retrieves every reminder
func (c *Client) ListReminders(ctx context.Context) ([]Reminder, error) {
	logger.Debug("Listing reminders")

	var reminders []Reminder
	if err := c.get(ctx, "reminders", &reminders); err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// GetReminder retrieves one reminder
func (c *Client) GetReminder(ctx context.Context, id string) (*Reminder, error) {
	var reminder Reminder
	if err := c.get(ctx, "reminders/"+id, &reminder); err != nil {
		return nil, fmt.Errorf("failed to fetch reminder: %w", err)
	}
	return &reminder, nil
}

// CreateReminder creates a reminder
func (c *Client) CreateReminder(ctx context.Context, req ReminderRequest) (*Reminder, error) {
	logger.Debug("Creating reminder", "title", req.Title, "repeat", req.Repeat)

	var reminder Reminder
	if err := c.post(ctx, "reminders", normalizeReminder(req), &reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return &reminder, nil
}

// UpdateReminder edits a reminder
func (c *Client) UpdateReminder(ctx context.Context, id string, req ReminderRequest) (*Reminder, error) {
	logger.Debug("Updating reminder", "reminder_id", id)

	var reminder Reminder
	if err := c.put(ctx, "reminders/"+id, normalizeReminder(req), &reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return &reminder, nil
}

// DeleteReminder deletes a reminder
func (c *Client) DeleteReminder(ctx context.Context, id string) error {
	if err := c.delete(ctx, "reminders/"+id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

// normalizeReminder drops days unless the repeat mode is custom.
func normalizeReminder(req ReminderRequest) ReminderRequest {
	if req.Repeat != RepeatCustom {
		req.Days = nil
	}
	return req
}

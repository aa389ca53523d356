package api

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// ListFeedback retrieves all feedback visible to the caller
func (c *Client) ListFeedback(ctx context.Context) ([]Feedback, error) {
	logger.Debug("Listing feedback")

	var items []Feedback
	if err := c.get(ctx, "/feedback", &items); err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}

// GetFeedback retrieves one feedback item
func (c *Client) GetFeedback(ctx context.Context, id string) (*Feedback, error) {
	var item Feedback
	if err := c.get(ctx, "/feedback/"+id, &item); err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}
	return &item, nil
}

// CreateFeedback submits feedback
func (c *Client) CreateFeedback(ctx context.Context, req FeedbackRequest) (*Feedback, error) {
	logger.Debug("Submitting feedback", "tag", req.Tag)

	var item Feedback
	if err := c.post(ctx, "/feedback", req, &item); err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}
	return &item, nil
}

// UpdateFeedback edits feedback
func (c *Client) UpdateFeedback(ctx context.Context, id string, req FeedbackRequest) (*Feedback, error) {
	var item Feedback
	if err := c.put(ctx, "/feedback/"+id, req, &item); err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}
	return &item, nil
}

// UpdateFeedbackStatus sets a feedback status (admin only)
func (c *Client) UpdateFeedbackStatus(ctx context.Context, id string, status FeedbackStatus) error {
	logger.Debug("Updating feedback status", "feedback_id", id, "status", status)

	body := map[string]FeedbackStatus{"status": status}
	if err := c.patch(ctx, "/feedback/"+id+"/status", body); err != nil {
		return fmt.Errorf("failed to update feedback status: %w", err)
	}
	return nil
}

// DeleteFeedback deletes feedback
func (c *Client) DeleteFeedback(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/feedback/"+id); err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	return nil
}

package api

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// ListTodoHeadings retrieves every todo heading
func (c *Client) ListTodoHeadings(ctx context.Context) ([]TodoHeading, error) {
	logger.Debug("Listing todo headings")

	var headings []TodoHeading
	if err := c.get(ctx, "todoHeadings", &headings); err != nil {
		return nil, fmt.Errorf("failed to list todo headings: %w", err)
	}
	return headings, nil
}

// CreateTodoHeading creates a todo heading
func (c *Client) CreateTodoHeading(ctx context.Context, req TodoHeadingRequest) (*TodoHeading, error) {
	if req.Color == "" {
		req.Color = DefaultTodoHeadingColor
	}

	var heading TodoHeading
	if err := c.post(ctx, "todoHeadings", req, &heading); err != nil {
		return nil, fmt.Errorf("failed to create todo heading: %w", err)
	}
	return &heading, nil
}

// UpdateTodoHeading edits a todo heading
func (c *Client) UpdateTodoHeading(ctx context.Context, id string, req TodoHeadingRequest) (*TodoHeading, error) {
	var heading TodoHeading
	if err := c.put(ctx, "todoHeadings/"+id, req, &heading); err != nil {
		return nil, fmt.Errorf("failed to update todo heading: %w", err)
	}
	return &heading, nil
}

// DeleteTodoHeading deletes a todo heading
func (c *Client) DeleteTodoHeading(ctx context.Context, id string) error {
	if err := c.delete(ctx, "todoHeadings/"+id); err != nil {
		return fmt.Errorf("failed to delete todo heading: %w", err)
	}
	return nil
}

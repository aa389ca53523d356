package api

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// ListHeadings retrieves every target heading in server order
func (c *Client) ListHeadings(ctx context.Context) ([]Heading, error) {
	logger.Debug("Listing headings")

	var headings []Heading
	if err := c.get(ctx, "targetHeadings", &headings); err != nil {
		return nil, fmt.Errorf("failed to list headings: %w", err)
	}
	return headings, nil
}

// GetHeading retrieves one heading
func (c *Client) GetHeading(ctx context.Context, id string) (*Heading, error) {
	logger.Debug("Fetching heading", "heading_id", id)

	var heading Heading
	if err := c.get(ctx, "targetHeadings/"+id, &heading); err != nil {
		return nil, fmt.Errorf("failed to fetch heading: %w", err)
	}
	return &heading, nil
}

// CreateHeading creates a heading
func (c *Client) CreateHeading(ctx context.Context, req HeadingRequest) (*Heading, error) {
	logger.Debug("Creating heading", "name", req.Name)

	var heading Heading
	if err := c.post(ctx, "targetHeadings", req, &heading); err != nil {
		return nil, fmt.Errorf("failed to create heading: %w", err)
	}
	return &heading, nil
}

// UpdateHeading renames or recolors a heading
func (c *Client) UpdateHeading(ctx context.Context, id string, req HeadingRequest) (*Heading, error) {
	logger.Debug("Updating heading", "heading_id", id)

	var heading Heading
	if err := c.put(ctx, "targetHeadings/"+id, req, &heading); err != nil {
		return nil, fmt.Errorf("failed to update heading: %w", err)
	}
	return &heading, nil
}

// ToggleHeading persists a heading's expanded flag
func (c *Client) ToggleHeading(ctx context.Context, id string, expanded bool) error {
	logger.Debug("Toggling heading", "heading_id", id, "expanded", expanded)

	body := map[string]bool{"isExpanded": expanded}
	if err := c.patch(ctx, "targetHeadings/"+id+"/toggle", body); err != nil {
		return fmt.Errorf("failed to toggle heading: %w", err)
	}
	return nil
}

// DeleteHeading deletes a heading
func (c *Client) DeleteHeading(ctx context.Context, id string) error {
	logger.Debug("Deleting heading", "heading_id", id)

	if err := c.delete(ctx, "targetHeadings/"+id); err != nil {
		return fmt.Errorf("failed to delete heading: %w", err)
	}
	return nil
}

package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

type deserveRequest struct {
	Title string `json:"title"`
}

// ListDeserve retrieves the "do I deserve it" list
func (c *Client) ListDeserve(ctx context.Context) ([]DeserveEntry, error) {
	logger.Debug("Listing deserve entries")

	var entries []DeserveEntry
	if err := c.get(ctx, "deserve", &entries); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// CreateDeserve adds an entry
func (c *Client) CreateDeserve(ctx context.Context, title string) (*DeserveEntry, error) {
	var entry DeserveEntry
	if err := c.post(ctx, "deserve", deserveRequest{Title: strings.TrimSpace(title)}, &entry); err != nil {
		return nil, fmt.Errorf("failed to add entry: %w", err)
	}
	return &entry, nil
}

// UpdateDeserve renames an entry
func (c *Client) UpdateDeserve(ctx context.Context, id, title string) (*DeserveEntry, error) {
	var entry DeserveEntry
	if err := c.put(ctx, "deserve/"+id, deserveRequest{Title: strings.TrimSpace(title)}, &entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return &entry, nil
}

// DeleteDeserve deletes an entry
func (c *Client) DeleteDeserve(ctx context.Context, id string) error {
	if err := c.delete(ctx, "deserve/"+id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

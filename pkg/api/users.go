package api

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// Me retrieves the profile of the token's owner
func (c *Client) Me(ctx context.Context) (*User, error) {
	logger.Debug("Fetching current user")

	var user User
	if err := c.get(ctx, "users/me", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch current user: %w", err)
	}
	return &user, nil
}

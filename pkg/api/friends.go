package api

import (
	"context"
	"fmt"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// ListFriends retrieves the current user's friend edges
func (c *Client) ListFriends(ctx context.Context) ([]UserFriend, error) {
	logger.Debug("Listing friends")

	var friends []UserFriend
	if err := c.get(ctx, "userFriends", &friends); err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

// AddFriend adds a friend by user id
func (c *Client) AddFriend(ctx context.Context, friendUserID string) error {
	logger.Debug("Adding friend", "friend_user_id", friendUserID)

	body := UserFriend{FriendUserID: friendUserID}
	if err := c.post(ctx, "userFriends", body, nil); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

// RemoveFriend removes a friend by user id
func (c *Client) RemoveFriend(ctx context.Context, friendUserID string) error {
	logger.Debug("Removing friend", "friend_user_id", friendUserID)

	if err := c.delete(ctx, "userFriends/"+friendUserID); err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

// FriendToday retrieves a friend's public steps for today
func (c *Client) FriendToday(ctx context.Context, friendUserID string) (*FriendToday, error) {
	logger.Debug("Fetching friend's day", "friend_user_id", friendUserID)

	var today FriendToday
	if err := c.get(ctx, "userFriends/"+friendUserID+"/today", &today); err != nil {
		return nil, fmt.Errorf("failed to fetch friend's steps: %w", err)
	}
	return &today, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/formatter"
)

// FriendService manages friends and shows their public progress.
type FriendService struct {
	*Env
	now func() time.Time
}

// NewFriendService creates a new friend service
func NewFriendService(env *Env) *FriendService {
	return &FriendService{Env: env, now: time.Now}
}

// List prints the current user's friends.
func (s *FriendService) List(ctx context.Context) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var friends []api.UserFriend
	if err := s.call(ctx, "Failed to load friends", func(ctx context.Context) error {
		var err error
		friends, err = s.API.ListFriends(ctx)
		return err
	}); err != nil {
		return err
	}

	rows := make([][]string, 0, len(friends))
	for _, f := range friends {
		email := ""
		if f.Friend != nil {
			email = f.Friend.Email
		}
		rows = append(rows, []string{f.FriendUserID, f.Name(), email})
	}
	return s.Out.List("Friends", friends, []string{"UID", "NAME", "EMAIL"}, rows)
}

// Add follows another user by uid.
func (s *FriendService) Add(ctx context.Context, uid string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return errors.New("friend uid cannot be empty")
	}
	me, err := s.require(ctx)
	if err != nil {
		return err
	}
	if me.UID == uid {
		return errors.New("you cannot add yourself as a friend")
	}
	if err := s.call(ctx, "Failed to add friend", func(ctx context.Context) error {
		return s.API.AddFriend(ctx, uid)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Friend added", "")
	return nil
}

// Remove unfollows a user.
func (s *FriendService) Remove(ctx context.Context, uid string, force bool) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}
	if err := s.confirm(force, "Remove friend %s?", uid); err != nil {
		return err
	}
	if err := s.call(ctx, "Failed to remove friend", func(ctx context.Context) error {
		return s.API.RemoveFriend(ctx, uid)
	}); err != nil {
		return err
	}
	s.Notify.Notify("Friend removed", "")
	return nil
}

// Today prints a friend's public steps for today. Nothing here can edit them.
func (s *FriendService) Today(ctx context.Context, uid string) error {
	if _, err := s.require(ctx); err != nil {
		return err
	}

	var today *api.FriendToday
	if err := s.call(ctx, "Failed to load friend's progress", func(ctx context.Context) error {
		var err error
		today, err = s.API.FriendToday(ctx, uid)
		return err
	}); err != nil {
		return err
	}

	v := tracker.ReadOnly(today.Steps, api.WeekdayOf(s.now()))
	if v.Empty() {
		s.Out.Info("No public targets")
		return nil
	}
	return s.Out.List(fmt.Sprintf("Public targets of %s", uid), v, viewHeaders, formatter.ViewRows(v))
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/formatter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/session"
)

// AuthService runs the login, logout and profile commands.
type AuthService struct {
	*Env
}

// NewAuthService creates a new auth service
func NewAuthService(env *Env) *AuthService {
	return &AuthService{Env: env}
}

// LoginOptions tunes Login.
type LoginOptions struct {
	// Wait bounds how long to wait for the browser callback.
	Wait time.Duration
	// NoListen skips the local callback listener; the token is pasted instead.
	NoListen bool
}

// Login starts the Google sign-in flow. The backend redirects back with a
// one-time token, which is caught by a local listener or pasted by the user.
func (s *AuthService) Login(ctx context.Context, opts LoginOptions) error {
	if s.Session.Resolve(ctx) == session.Authenticated {
		s.Out.Warning("Already logged in as %s", displayName(s.Session.User()))
		ok, err := s.Prompt.Confirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	loginURL := s.Session.LoginURL()
	s.Out.Info("Open this URL to sign in with Google:")
	s.Out.Info("  %s", loginURL)
	if s.OpenBrowser != nil {
		if err := s.OpenBrowser(loginURL); err != nil {
			logger.Debug("Could not open browser", "error", err)
		}
	}

	var token string
	if !opts.NoListen && s.CallbackAddr != "" {
		token = s.waitForCallback(ctx, opts.Wait)
	}
	if token == "" {
		s.Out.Info("Copy the token from the page you were redirected to.")
		t, err := s.Prompt.Secret("Token: ")
		if err != nil {
			return err
		}
		token = t
	}
	return s.Callback(ctx, token)
}

func (s *AuthService) waitForCallback(ctx context.Context, wait time.Duration) string {
	cs, err := session.ListenForCallback(s.CallbackAddr)
	if err != nil {
		logger.Warn("Callback listener unavailable", "addr", s.CallbackAddr, "error", err)
		return ""
	}
	defer cs.Close()

	if wait <= 0 {
		wait = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	s.Out.Info("Waiting for sign-in on %s ...", cs.URL())
	token, err := cs.Wait(ctx)
	if err != nil {
		logger.Debug("No callback received", "error", err)
		return ""
	}
	return token
}

// Callback completes login with the one-time token from the redirect.
func (s *AuthService) Callback(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}

	var user *api.User
	err := s.call(ctx, "Login failed", func(ctx context.Context) error {
		var err error
		user, err = s.Session.Callback(ctx, token)
		return err
	})
	if err != nil {
		return err
	}
	s.loggedIn(user)
	return nil
}

// UseToken logs in with an ID token copied from the web app's session.
func (s *AuthService) UseToken(ctx context.Context, idToken string) error {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return errors.New("token cannot be empty")
	}

	var user *api.User
	err := s.call(ctx, "Login failed", func(ctx context.Context) error {
		var err error
		user, err = s.Session.UseIDToken(ctx, idToken)
		return err
	})
	if err != nil {
		return err
	}
	s.loggedIn(user)
	return nil
}

func (s *AuthService) loggedIn(user *api.User) {
	s.Notify.Notify("Logged in successfully", "")
	s.Out.Info("Logged in as %s", formatter.Bold.Sprint(displayName(user)))
}

// Logout forgets the stored session.
func (s *AuthService) Logout(ctx context.Context, force bool) error {
	if s.Session.Resolve(ctx) != session.Authenticated {
		s.Out.Warning("Not logged in")
		s.Session.Logout()
		return nil
	}
	if err := s.confirm(force, "Logout?"); err != nil {
		return err
	}
	s.Session.Logout()
	s.Out.Success("Logged out successfully")
	return nil
}

// Me prints the current profile.
func (s *AuthService) Me(ctx context.Context) error {
	user, err := s.require(ctx)
	if err != nil {
		return err
	}
	return s.Out.Record("Profile", user, userFields(user, s.Session.IsAdmin()))
}

// Status prints the session state without failing when logged out.
func (s *AuthService) Status(ctx context.Context) error {
	state := s.Session.Resolve(ctx)
	user := s.Session.User()

	status := struct {
		State string    `json:"state"`
		User  *api.User `json:"user,omitempty"`
		Admin bool      `json:"admin"`
	}{state.String(), user, s.Session.IsAdmin()}

	fields := []output.Field{{Key: "State", Value: state.String()}}
	if user != nil {
		fields = append(fields, userFields(user, status.Admin)...)
	}
	return s.Out.Record("Session", status, fields)
}

func userFields(u *api.User, admin bool) []output.Field {
	fields := []output.Field{
		{Key: "UID", Value: u.UID},
		{Key: "Name", Value: u.DisplayName},
		{Key: "Email", Value: u.Email},
	}
	if admin {
		fields = append(fields, output.Field{Key: "Admin", Value: "yes"})
	}
	return fields
}

func displayName(u *api.User) string {
	if u == nil {
		return "unknown"
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Email != "" {
		return u.Email
	}
	return u.UID
}

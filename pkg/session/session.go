// Package session tracks who is logged in.
//
// A Session starts Unresolved. Resolve reads the persisted token: with no
// token it goes straight to Anonymous; otherwise it moves to Checking while
// the profile is fetched and ends Authenticated or Anonymous. A failed
// profile fetch clears the persisted token.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/credentials"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// State is the session's position in the login lifecycle.
type State int

const (
	Unresolved State = iota
	Checking
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return "unknown"
}

// ErrNotAuthenticated is returned by Require when nobody is logged in.
var ErrNotAuthenticated = errors.New("not logged in: run 'deserve auth login'")

// ProfileFetcher loads the profile of the token's owner.
type ProfileFetcher interface {
	Me(ctx context.Context) (*api.User, error)
}

// TokenExchanger turns a one-time custom token into credentials.
type TokenExchanger interface {
	SignInWithCustomToken(ctx context.Context, customToken string) (*credentials.Credentials, error)
}

// Recoverer renews an expired token before the profile fetch.
type Recoverer interface {
	RecoverSession(ctx context.Context) (*credentials.Credentials, error)
}

// Options configures a Session.
type Options struct {
	Store     credentials.Store
	Profile   ProfileFetcher
	Exchanger TokenExchanger
	Recovery  Recoverer
	BaseURL   string
	AdminUID  string
}

// Session is the process's authentication state.
type Session struct {
	opts Options

	// resolveMu serializes resolutions so Checking is never observed by Require.
	resolveMu sync.Mutex

	mu    sync.RWMutex
	state State
	user  *api.User
	subs  []func(State)
}

// New creates an unresolved session.
func New(opts Options) *Session {
	return &Session{opts: opts, state: Unresolved}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the cached profile, or nil.
func (s *Session) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Subscribe registers fn to run on every state change.
func (s *Session) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Resolve determines the state from the persisted token.
func (s *Session) Resolve(ctx context.Context) State {
	s.resolveMu.Lock()
	defer s.resolveMu.Unlock()
	return s.resolve(ctx)
}

func (s *Session) resolve(ctx context.Context) State {
	creds, err := s.opts.Store.Load()
	if err != nil {
		logger.Warn("Could not read stored credentials", "error", err)
	}
	if creds == nil || creds.IDToken == "" {
		s.set(Anonymous, nil)
		return Anonymous
	}

	s.set(Checking, nil)

	if creds.IsExpired() && creds.CanRefresh() && s.opts.Recovery != nil {
		if _, err := s.opts.Recovery.RecoverSession(ctx); err != nil {
			logger.Warn("Token refresh failed", "error", err)
		}
	}

	user, err := s.opts.Profile.Me(ctx)
	if err != nil {
		logger.Debug("Profile fetch failed, clearing token", "error", err)
		if delErr := s.opts.Store.Delete(); delErr != nil {
			logger.Error("Failed to delete credentials", "error", delErr)
		}
		s.set(Anonymous, nil)
		return Anonymous
	}

	s.set(Authenticated, user)
	return Authenticated
}

// Require blocks until the state is known and returns the profile, or
// ErrNotAuthenticated.
func (s *Session) Require(ctx context.Context) (*api.User, error) {
	s.resolveMu.Lock()
	if s.State() == Unresolved {
		s.resolve(ctx)
	}
	s.resolveMu.Unlock()

	if s.State() != Authenticated {
		return nil, ErrNotAuthenticated
	}
	return s.User(), nil
}

// LoginURL is where the browser starts the Google sign-in. Visiting it does
// not change the session; a token arrives later through Callback.
func (s *Session) LoginURL() string {
	base := s.opts.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "auth/google"
}

// Callback completes a login with the custom token from the OAuth redirect.
func (s *Session) Callback(ctx context.Context, customToken string) (*api.User, error) {
	customToken = strings.TrimSpace(customToken)
	if customToken == "" {
		return nil, errors.New("authentication failed: missing token")
	}
	if s.opts.Exchanger == nil {
		return nil, errors.New("token exchange is not configured")
	}

	creds, err := s.opts.Exchanger.SignInWithCustomToken(ctx, customToken)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, creds)
}

// UseIDToken logs in with an ID token obtained elsewhere, such as the web
// app's firebaseToken cookie.
func (s *Session) UseIDToken(ctx context.Context, idToken string) (*api.User, error) {
	creds, err := credentials.FromIDToken(strings.TrimSpace(idToken))
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, creds)
}

func (s *Session) adopt(ctx context.Context, creds *credentials.Credentials) (*api.User, error) {
	s.resolveMu.Lock()
	defer s.resolveMu.Unlock()

	if err := s.opts.Store.Save(creds); err != nil {
		return nil, err
	}
	if s.resolve(ctx) != Authenticated {
		return nil, errors.New("login failed: the server rejected the new token")
	}
	return s.User(), nil
}

// Logout forgets the profile and the persisted token. It does not navigate.
func (s *Session) Logout() {
	if err := s.opts.Store.Delete(); err != nil {
		logger.Error("Failed to delete credentials", "error", err)
	}
	s.set(Anonymous, nil)
}

// IsAdmin reports whether the logged-in user is the configured admin.
func (s *Session) IsAdmin() bool {
	u := s.User()
	return u != nil && s.opts.AdminUID != "" && u.UID == s.opts.AdminUID
}

func (s *Session) set(state State, user *api.User) {
	s.mu.Lock()
	changed := s.state != state
	s.state = state
	s.user = user
	subs := append(([]func(State))(nil), s.subs...)
	s.mu.Unlock()

	if changed {
		logger.Debug("Session state changed", "state", state)
		for _, fn := range subs {
			fn(state)
		}
	}
}

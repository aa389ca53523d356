package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/client"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/credentials"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
)

type memStore struct {
	mu    sync.Mutex
	creds *credentials.Credentials
}

func (m *memStore) Load() (*credentials.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds, nil
}

func (m *memStore) Save(c *credentials.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = c
	return nil
}

func (m *memStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}

type fakeProfile struct {
	user  *api.User
	err   error
	calls int
}

func (f *fakeProfile) Me(context.Context) (*api.User, error) {
	f.calls++
	return f.user, f.err
}

type fakeExchanger struct{ idToken string }

func (f fakeExchanger) SignInWithCustomToken(_ context.Context, tok string) (*credentials.Credentials, error) {
	if tok == "bad" {
		return nil, errors.New("INVALID_CUSTOM_TOKEN")
	}
	return &credentials.Credentials{IDToken: f.idToken, RefreshToken: "r"}, nil
}

func TestResolveWithoutToken(t *testing.T) {
	profile := &fakeProfile{}
	s := New(Options{Store: &memStore{}, Profile: profile})
	assert.Equal(t, Unresolved, s.State())

	assert.Equal(t, Anonymous, s.Resolve(context.Background()))
	assert.Equal(t, 0, profile.calls, "no token means no profile fetch")
}

func TestResolveAuthenticated(t *testing.T) {
	store := &memStore{creds: &credentials.Credentials{IDToken: "tok"}}
	s := New(Options{Store: store, Profile: &fakeProfile{user: &api.User{UID: "u1"}}})

	var seen []State
	s.Subscribe(func(st State) { seen = append(seen, st) })

	assert.Equal(t, Authenticated, s.Resolve(context.Background()))
	assert.Equal(t, []State{Checking, Authenticated}, seen)
	assert.Equal(t, "u1", s.User().UID)
}

func TestResolveFailureClearsToken(t *testing.T) {
	store := &memStore{creds: &credentials.Credentials{IDToken: "tok"}}
	s := New(Options{Store: store, Profile: &fakeProfile{err: errors.New("boom")}})

	assert.Equal(t, Anonymous, s.Resolve(context.Background()))
	creds, _ := store.Load()
	assert.Nil(t, creds)
	assert.Nil(t, s.User())
}

type stubRecovery struct{ calls int }

func (r *stubRecovery) RecoverSession(context.Context) (*credentials.Credentials, error) {
	r.calls++
	return &credentials.Credentials{IDToken: "fresh"}, nil
}

func TestResolveRefreshesExpiredToken(t *testing.T) {
	store := &memStore{creds: &credentials.Credentials{
		IDToken:      "old",
		RefreshToken: "r",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}}
	rec := &stubRecovery{}
	s := New(Options{Store: store, Profile: &fakeProfile{user: &api.User{UID: "u1"}}, Recovery: rec})

	assert.Equal(t, Authenticated, s.Resolve(context.Background()))
	assert.Equal(t, 1, rec.calls)
}

func TestRequire(t *testing.T) {
	s := New(Options{Store: &memStore{}, Profile: &fakeProfile{}})
	_, err := s.Require(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	store := &memStore{creds: &credentials.Credentials{IDToken: "tok"}}
	profile := &fakeProfile{user: &api.User{UID: "u1"}}
	s = New(Options{Store: store, Profile: profile})
	u, err := s.Require(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UID)

	// Already resolved: no second fetch.
	_, err = s.Require(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, profile.calls)
}

func TestLogout(t *testing.T) {
	store := &memStore{creds: &credentials.Credentials{IDToken: "tok"}}
	s := New(Options{Store: store, Profile: &fakeProfile{user: &api.User{UID: "u1"}}})
	s.Resolve(context.Background())

	s.Logout()
	assert.Equal(t, Anonymous, s.State())
	assert.Nil(t, s.User())
	creds, _ := store.Load()
	assert.Nil(t, creds)
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "http://localhost:5000/auth/google",
		New(Options{BaseURL: "http://localhost:5000/"}).LoginURL())
	assert.Equal(t, "https://api.example.com/auth/google",
		New(Options{BaseURL: "https://api.example.com"}).LoginURL())

	s := New(Options{Store: &memStore{}})
	_ = s.LoginURL()
	assert.Equal(t, Unresolved, s.State(), "LoginURL must not change state")
}

func TestCallback(t *testing.T) {
	store := &memStore{}
	s := New(Options{
		Store:     store,
		Profile:   &fakeProfile{user: &api.User{UID: "u1"}},
		Exchanger: fakeExchanger{idToken: "id-1"},
	})

	_, err := s.Callback(context.Background(), "")
	assert.Error(t, err)
	_, err = s.Callback(context.Background(), "bad")
	assert.Error(t, err)
	assert.Nil(t, store.creds)

	u, err := s.Callback(context.Background(), "custom")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UID)
	assert.Equal(t, "id-1", store.creds.IDToken)
	assert.Equal(t, Authenticated, s.State())
}

func TestIsAdmin(t *testing.T) {
	store := &memStore{creds: &credentials.Credentials{IDToken: "tok"}}
	s := New(Options{Store: store, Profile: &fakeProfile{user: &api.User{UID: "admin"}}, AdminUID: "admin"})
	assert.False(t, s.IsAdmin())
	s.Resolve(context.Background())
	assert.True(t, s.IsAdmin())

	other := New(Options{Store: store, Profile: &fakeProfile{user: &api.User{UID: "someone"}}, AdminUID: "admin"})
	other.Resolve(context.Background())
	assert.False(t, other.IsAdmin())
}

// A 401 from any call mid-session logs out, notifies once and navigates home.
func TestUnauthorizedMidSession(t *testing.T) {
	var mu sync.Mutex
	expired := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if expired {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"uid":"u1","email":"u1@example.com"}`))
	}))
	defer srv.Close()

	store := &memStore{creds: &credentials.Credentials{IDToken: "tok"}}
	httpClient := client.New(client.Options{BaseURL: srv.URL + "/", Tokens: credentials.TokenSource{Store: store}})
	apiClient := api.New(httpClient)
	s := New(Options{Store: store, Profile: apiClient, BaseURL: srv.URL + "/"})

	center := notify.NewCenter()
	var notes []notify.Notification
	center.Subscribe(func(n notify.Notification) { notes = append(notes, n) })
	var paths []string

	httpClient.Inject(client.Hooks{
		Logout:   s.Logout,
		Notify:   center.Notify,
		Navigate: func(p string) { paths = append(paths, p) },
	})

	require.Equal(t, Authenticated, s.Resolve(context.Background()))

	mu.Lock()
	expired = true
	mu.Unlock()

	ctx := context.Background()
	_, err := apiClient.ListSteps(ctx)
	assert.True(t, api.IsUnauthorized(err))
	_, err = apiClient.ListHeadings(ctx)
	assert.True(t, api.IsUnauthorized(err))

	assert.Equal(t, Anonymous, s.State())
	require.Len(t, notes, 1)
	assert.Equal(t, client.SessionInvalidMessage, notes[0].Message)
	assert.Equal(t, notify.Error, notes[0].Severity)
	assert.Equal(t, []string{"/", "/"}, paths)
	creds, _ := store.Load()
	assert.Nil(t, creds)
}

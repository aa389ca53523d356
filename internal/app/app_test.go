package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/client"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/credentials"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/session"
)

func newApp(t *testing.T, h http.Handler) (*App, *credentials.FileStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := &credentials.FileStore{Path: filepath.Join(t.TempDir(), "credentials.json")}
	a := New(Options{
		Version:  "test",
		Store:    store,
		Client:   client.Options{BaseURL: srv.URL + "/"},
		Debounce: 20 * time.Millisecond,
	})
	return a, store
}

func TestUnauthorizedReachesNavigator(t *testing.T) {
	a, store := newApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, store.Save(&credentials.Credentials{IDToken: "stale"}))

	var mu sync.Mutex
	var paths []string
	a.SetNavigator(func(p string) {
		mu.Lock()
		defer mu.Unlock()
		paths = append(paths, p)
	})

	_, err := a.API.ListSteps(context.Background())
	require.Error(t, err)

	assert.Equal(t, session.Anonymous, a.Session.State())
	creds, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, creds)

	visible := a.Notify.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, client.SessionInvalidMessage, visible[0].Message)
	assert.Equal(t, notify.Error, visible[0].Severity)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/"}, paths)
}

func TestNavigateWithoutNavigator(t *testing.T) {
	a, _ := newApp(t, http.NotFoundHandler())
	assert.NotPanics(t, func() { a.Navigate("/") })
}

func TestTokenReadPerRequest(t *testing.T) {
	var seen atomic.Value
	a, store := newApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uid":"u1"}`))
	}))

	require.NoError(t, store.Save(&credentials.Credentials{IDToken: "first"}))
	_, err := a.API.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer first", seen.Load())

	require.NoError(t, store.Save(&credentials.Credentials{IDToken: "second"}))
	_, err = a.API.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer second", seen.Load())
}

func TestNewTrackerUsesAppCollaborators(t *testing.T) {
	var mu sync.Mutex
	var writes int
	a, _ := newApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /targetHeadings":
			_, _ = w.Write([]byte(`[]`))
		case "GET /targetSteps":
			_, _ = w.Write([]byte(`[{"id":"s1","title":"Run","type":"count","status":"active"}]`))
		case "POST /targetSteps/s1/data":
			mu.Lock()
			writes++
			mu.Unlock()
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	assert.Equal(t, 20*time.Millisecond, a.Debounce())

	tr := a.NewTracker()
	defer tr.Close()

	require.NoError(t, tr.Load(context.Background()))
	assert.False(t, a.Loader.Busy())

	require.NoError(t, tr.Increment("s1"))
	require.NoError(t, tr.Increment("s1"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return writes == 1
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, tr.Wait(ctx))
	assert.False(t, tr.HasUnsaved())
}

func TestDefaultsFilled(t *testing.T) {
	a := New(Options{Store: &credentials.FileStore{Path: filepath.Join(t.TempDir(), "c.json")}})
	assert.NotNil(t, a.Firebase)
	assert.NotNil(t, a.Recovery)
	assert.Greater(t, a.Debounce(), time.Duration(0))
	var _ *api.Client = a.API
}

// Package app wires the long-lived collaborators of one process: the
// credentials store, the HTTP client, the session, the loader and the
// notification center. Nothing here is a package-level singleton; commands
// and the TUI receive an *App and pass its parts down explicitly.
package app

import (
	"sync"
	"time"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/auth"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/client"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/config"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/credentials"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/loader"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/session"
)

// Navigator moves the user to a route. The CLI prints a hint; the TUI
// switches views.
type Navigator func(path string)

// Options configures New. Zero fields are filled from config.
type Options struct {
	Version  string
	Store    credentials.Store
	Client   client.Options
	Firebase *auth.Firebase
	Debounce time.Duration
	AdminUID string
}

// App holds every collaborator of one process.
type App struct {
	Version  string
	Store    credentials.Store
	Client   *client.Client
	API      *api.Client
	Firebase *auth.Firebase
	Recovery *auth.SessionRecovery
	Session  *session.Session
	Loader   *loader.Loader
	Notify   *notify.Center

	debounce time.Duration

	mu       sync.RWMutex
	navigate Navigator
}

// FromConfig builds an App from the loaded configuration.
func FromConfig(version string) *App {
	store := credentials.NewStore()
	return New(Options{
		Version:  version,
		Store:    store,
		Client:   client.OptionsFromConfig(credentials.TokenSource{Store: store}, version),
		Firebase: auth.FirebaseFromConfig(),
		Debounce: config.GetDuration("sync.debounce"),
		AdminUID: config.GetString("admin.user_uid"),
	})
}

// New wires an App. The 401 hooks are injected into the client before New
// returns, so every request made through the App is covered.
func New(opts Options) *App {
	if opts.Client.Tokens == nil && opts.Store != nil {
		opts.Client.Tokens = credentials.TokenSource{Store: opts.Store}
	}
	if opts.Firebase == nil {
		opts.Firebase = auth.NewFirebase("")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = tracker.DefaultDebounce
	}

	a := &App{
		Version:  opts.Version,
		Store:    opts.Store,
		Client:   client.New(opts.Client),
		Firebase: opts.Firebase,
		Loader:   loader.New(),
		Notify:   notify.NewCenter(),
		debounce: opts.Debounce,
	}
	a.API = api.New(a.Client)
	a.Recovery = auth.NewSessionRecovery(opts.Store, opts.Firebase)
	a.Session = session.New(session.Options{
		Store:     opts.Store,
		Profile:   a.API,
		Exchanger: opts.Firebase,
		Recovery:  a.Recovery,
		BaseURL:   opts.Client.BaseURL,
		AdminUID:  opts.AdminUID,
	})

	a.Client.Inject(client.Hooks{
		Logout:   a.Session.Logout,
		Notify:   a.Notify.Notify,
		Navigate: a.Navigate,
	})

	a.Session.Subscribe(func(s session.State) {
		logger.Debug("Session state changed", "state", s.String())
	})
	return a
}

// SetNavigator replaces where 401s send the user.
func (a *App) SetNavigator(n Navigator) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.navigate = n
}

// Navigate forwards to the current navigator. Without one it only logs.
func (a *App) Navigate(path string) {
	a.mu.RLock()
	n := a.navigate
	a.mu.RUnlock()
	if n == nil {
		logger.Debug("No navigator installed", "path", path)
		return
	}
	n(path)
}

// Debounce returns the configured write quiet period.
func (a *App) Debounce() time.Duration {
	return a.debounce
}

// NewTracker creates a habit tracker bound to this App's API, loader and
// notifications. Extra options are applied last.
func (a *App) NewTracker(opts ...tracker.Option) *tracker.Tracker {
	base := []tracker.Option{
		tracker.WithDebounce(a.debounce),
		tracker.WithLoader(a.Loader),
		tracker.WithNotifier(a.Notify),
	}
	return tracker.New(a.API, append(base, opts...)...)
}

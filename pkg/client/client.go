package client

import (
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	json "github.com/json-iterator/go"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/config"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
)

// SessionInvalidMessage is shown when the backend rejects the bearer token.
const SessionInvalidMessage = "Invalid session. Login Again"

// TokenSource yields the current bearer token. It is consulted on every
// request; an empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() (string, error)

// Token calls f.
func (f TokenFunc) Token() (string, error) { return f() }

// Hooks react to a 401 from any call. All three must be set for the
// reaction to run.
type Hooks struct {
	Logout   func()
	Notify   func(msg string, severity notify.Severity)
	Navigate func(path string)
}

func (h Hooks) complete() bool {
	return h.Logout != nil && h.Notify != nil && h.Navigate != nil
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Tokens    TokenSource
}

// OptionsFromConfig reads api.base_url and api.timeout.
func OptionsFromConfig(tokens TokenSource, version string) Options {
	return Options{
		BaseURL:   config.GetString("api.base_url"),
		Timeout:   time.Duration(config.GetInt("api.timeout")) * time.Second,
		UserAgent: "deserve-cli/" + version,
		Tokens:    tokens,
	}
}

// Client is the authenticated HTTP client every API call goes through.
type Client struct {
	http   *resty.Client
	tokens TokenSource

	mu    sync.RWMutex
	hooks Hooks
}

// New builds a client. Base URL paths are resolved relative to opts.BaseURL.
func New(opts Options) *Client {
	c := &Client{
		http:   resty.New(),
		tokens: opts.Tokens,
	}

	if opts.UserAgent == "" {
		opts.UserAgent = "deserve-cli"
	}

	c.http.SetBaseURL(opts.BaseURL)
	if opts.Timeout > 0 {
		c.http.SetTimeout(opts.Timeout)
	}
	c.http.SetHeader("Content-Type", "application/json")
	c.http.SetHeader("User-Agent", opts.UserAgent)
	c.http.JSONMarshal = json.Marshal
	c.http.JSONUnmarshal = json.Unmarshal

	c.http.OnBeforeRequest(c.beforeRequest)
	c.http.OnAfterResponse(c.afterResponse)

	return c
}

// Inject installs the 401 reaction. Call it once, after the session,
// notification center and navigator exist.
func (c *Client) Inject(h Hooks) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = h
}

// R starts a request.
func (c *Client) R() *resty.Request {
	return c.http.R()
}

// HTTP exposes the underlying resty client.
func (c *Client) HTTP() *resty.Client {
	return c.http
}

func (c *Client) beforeRequest(_ *resty.Client, req *resty.Request) error {
	req.SetHeader("X-Request-ID", uuid.NewString())

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			logger.Warn("Could not read session token", "error", err)
		} else if token != "" {
			req.SetAuthToken(token)
		}
	}

	logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
	return nil
}

func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	logger.Debug("HTTP Response", "status", resp.StatusCode(), "url", resp.Request.URL)

	if resp.StatusCode() == 401 {
		c.unauthorized()
	}
	return nil
}

func (c *Client) unauthorized() {
	c.mu.RLock()
	h := c.hooks
	c.mu.RUnlock()

	if !h.complete() {
		logger.Warn("Received 401 before session hooks were injected")
		return
	}

	h.Logout()
	h.Notify(SessionInvalidMessage, notify.Error)
	h.Navigate("/")
}

package session

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// CallbackPath is the route the OAuth redirect lands on.
const CallbackPath = "/auth/callback"

const callbackPage = `<!doctype html><html><body><p>Logging in... you can close this window.</p></body></html>`

// CallbackServer is a one-shot local listener for the OAuth redirect. It
// captures the ?token= query parameter.
type CallbackServer struct {
	listener net.Listener
	srv      *http.Server
	tokens   chan string
}

// ListenForCallback starts listening on addr (host:port, port 0 picks one).
func ListenForCallback(addr string) (*CallbackServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	cs := &CallbackServer{
		listener: ln,
		tokens:   make(chan string, 1),
	}

	r.GET(CallbackPath, func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.String(http.StatusBadRequest, "Authentication failed: Missing token")
			return
		}
		select {
		case cs.tokens <- token:
		default:
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(callbackPage))
	})

	cs.srv = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := cs.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Callback server stopped", "error", err)
		}
	}()

	return cs, nil
}

// URL is the full callback address.
func (cs *CallbackServer) URL() string {
	return "http://" + cs.listener.Addr().String() + CallbackPath
}

// Wait returns the first token received, or the context's error.
func (cs *CallbackServer) Wait(ctx context.Context) (string, error) {
	select {
	case tok := <-cs.tokens:
		return tok, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops the listener.
func (cs *CallbackServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return cs.srv.Shutdown(ctx)
}

// Package service implements the user-facing flow of each command: it
// checks the session, brackets backend calls with the loader, reports
// failures as notifications and prints results.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/VisheshVGR/do-i-deserve-it-website/internal/tracker"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/loader"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/output"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/prompter"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/session"
)

// Env is everything a service needs. Every field except OpenBrowser is
// required.
type Env struct {
	API        *api.Client
	Session    *session.Session
	Loader     *loader.Loader
	Notify     notify.Notifier
	Out        *output.Printer
	Prompt     *prompter.Prompter
	NewTracker func(opts ...tracker.Option) *tracker.Tracker

	// OpenBrowser opens a URL for the login flow. Nil prints the URL only.
	OpenBrowser  func(url string) error
	CallbackAddr string
}

// ErrReported marks an error the user has already been told about.
var ErrReported = errors.New("reported")

type reportedError struct{ err error }

func (e *reportedError) Error() string   { return e.err.Error() }
func (e *reportedError) Unwrap() []error { return []error{e.err, ErrReported} }

func reported(err error) error {
	return &reportedError{err: err}
}

// IsReported reports whether err was already shown as a notification.
func IsReported(err error) bool {
	return errors.Is(err, ErrReported)
}

// require resolves the session and fails with a login hint when anonymous.
func (e *Env) require(ctx context.Context) (*api.User, error) {
	u, err := e.Session.Require(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			e.Out.Error("Not logged in. Run 'deserve auth login'")
			return nil, reported(err)
		}
		return nil, err
	}
	return u, nil
}

// call runs fn with the loader shown. Failures other than 401 are turned
// into an error notification using the server's message or fallback; 401s
// are already handled by the client.
func (e *Env) call(ctx context.Context, fallback string, fn func(ctx context.Context) error) error {
	err := e.Loader.Track(func() error { return fn(ctx) })
	if err == nil {
		return nil
	}
	logger.Error(fallback, "error", err)
	if !api.IsUnauthorized(err) {
		e.Notify.Notify(api.Message(err, fallback), notify.Error)
	}
	return reported(err)
}

// confirm asks before destructive actions unless force is set.
func (e *Env) confirm(force bool, format string, args ...interface{}) error {
	if force {
		return nil
	}
	ok, err := e.Prompt.Confirm(fmt.Sprintf(format, args...))
	if err != nil {
		return err
	}
	if !ok {
		return prompter.ErrCancelled
	}
	return nil
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// parseDays accepts weekday names separated by commas or spaces.
func parseDays(in []string) ([]api.Weekday, error) {
	seen := map[api.Weekday]bool{}
	for _, raw := range in {
		for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
			d, ok := api.ParseWeekday(part)
			if !ok {
				return nil, fmt.Errorf("invalid weekday %q", part)
			}
			seen[d] = true
		}
	}
	// Mon..Sun regardless of input order.
	ordered := make([]api.Weekday, 0, len(seen))
	for _, d := range api.Weekdays {
		if seen[d] {
			ordered = append(ordered, d)
		}
	}
	return ordered, nil
}

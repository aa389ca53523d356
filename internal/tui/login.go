package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/session"
)

// callbackWait bounds how long the browser sign-in is waited for.
const callbackWait = 2 * time.Minute

func (m Model) loginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Login):
		return m, m.browserLogin()
	case key.Matches(msg, k.Paste):
		token := new(string)
		return m.showForm(tokenForm("One-time token", "From the page the sign-in redirected to", token), func() tea.Cmd {
			return m.login(func(ctx context.Context) error {
				_, err := m.app.Session.Callback(ctx, *token)
				return err
			})
		})
	case key.Matches(msg, k.IDToken):
		token := new(string)
		return m.showForm(tokenForm("ID token", "The firebaseToken cookie of the web app", token), func() tea.Cmd {
			return m.login(func(ctx context.Context) error {
				_, err := m.app.Session.UseIDToken(ctx, *token)
				return err
			})
		})
	}
	return m, nil
}

// login runs fn and reports the outcome. The session change itself moves
// the program to the target view.
func (m Model) login(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Loader.Track(func() error { return fn(m.ctx) }); err != nil {
			logger.Error("Login failed", "error", err)
			m.app.Notify.Notify(err.Error(), notify.Error)
			return nil
		}
		m.app.Notify.Notify("Logged in", notify.Success)
		return nil
	}
}

func (m Model) browserLogin() tea.Cmd {
	url := m.app.Session.LoginURL()
	if m.opts.OpenBrowser != nil {
		if err := m.opts.OpenBrowser(url); err != nil {
			logger.Debug("Could not open browser", "error", err)
		}
	}
	if m.opts.CallbackAddr == "" {
		m.app.Notify.Notify("Finish signing in, then press p to paste the token", notify.Info)
		return nil
	}

	return m.login(func(ctx context.Context) error {
		cs, err := session.ListenForCallback(m.opts.CallbackAddr)
		if err != nil {
			return fmt.Errorf("callback listener unavailable, press p to paste the token: %w", err)
		}
		defer cs.Close()

		ctx, cancel := context.WithTimeout(ctx, callbackWait)
		defer cancel()
		token, err := cs.Wait(ctx)
		if err != nil {
			return fmt.Errorf("no sign-in received: %w", err)
		}
		_, err = m.app.Session.Callback(ctx, token)
		return err
	})
}

func (m Model) viewLogin() string {
	state := m.app.Session.State()
	if state == session.Unresolved || state == session.Checking {
		return titleStyle.Render("Do I Deserve It") + "\n" + m.spinner.View() + " Checking session…"
	}
	return titleStyle.Render("Do I Deserve It") + "\n" +
		"Sign in with Google to track your targets.\n\n" +
		faintStyle.Render(m.app.Session.LoginURL())
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/credentials"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

// Refresher renews an ID token from a refresh token.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*credentials.Credentials, error)
}

// SessionRecovery handles automatic session recovery
type SessionRecovery struct {
	store      credentials.Store
	refresher  Refresher
	maxRetries int
	retryDelay time.Duration
}

// NewSessionRecovery creates a new session recovery handler
func NewSessionRecovery(store credentials.Store, refresher Refresher) *SessionRecovery {
	return &SessionRecovery{
		store:      store,
		refresher:  refresher,
		maxRetries: 3,
		retryDelay: 2 * time.Second,
	}
}

// RecoverSession attempts to recover an expired session
func (sr *SessionRecovery) RecoverSession(ctx context.Context) (*credentials.Credentials, error) {
	logger.Debug("Attempting to recover session")

	creds, err := sr.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	if creds == nil || !creds.CanRefresh() {
		return nil, fmt.Errorf("no refresh token available - please log in again")
	}

	// Try to refresh the token
	for attempt := 1; attempt <= sr.maxRetries; attempt++ {
		logger.Debug("Refreshing token", "attempt", attempt)

		fresh, err := sr.refresher.Refresh(ctx, creds.RefreshToken)
		if err == nil {
			if fresh.RefreshToken == "" {
				fresh.RefreshToken = creds.RefreshToken
			}
			if err := sr.store.Save(fresh); err != nil {
				logger.Error("Failed to save updated credentials", "error", err)
			}
			return fresh, nil
		}
		logger.Warn("Token refresh failed", "attempt", attempt, "error", err)

		if attempt < sr.maxRetries {
			select {
			case <-time.After(sr.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("failed to recover session after %d attempts - please log in again", sr.maxRetries)
}

// IsSessionError checks if an error is a session-related error
func IsSessionError(err error) bool {
	if err == nil {
		return false
	}
	if api.IsUnauthorized(err) {
		return true
	}

	errMsg := err.Error()
	return errMsg == "401" ||
		errMsg == "unauthorized" ||
		errMsg == "session expired" ||
		errMsg == "token expired"
}

// HandleSessionError handles session-related errors with recovery
func (sr *SessionRecovery) HandleSessionError(ctx context.Context, err error) error {
	if !IsSessionError(err) {
		return err
	}

	logger.Debug("Handling session error with recovery")

	// Try to recover the session
	if _, recoveryErr := sr.RecoverSession(ctx); recoveryErr != nil {
		logger.Error("Session recovery failed", "error", recoveryErr)
		return fmt.Errorf("session expired: %w", errors.Join(err, recoveryErr))
	}

	return nil
}

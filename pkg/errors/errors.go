// Package errors turns failures from the backend, the network and the
// session into messages a user can act on.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorType categorizes a failure by what the user can do about it.
type ErrorType string

const (
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeSession    ErrorType = "session"
	ErrorTypeForbidden  ErrorType = "forbidden"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeServer     ErrorType = "server"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// StatusCoder is implemented by errors that carry an HTTP status, such as
// api.APIError. Declared here so this package stays a leaf.
type StatusCoder interface {
	error
	HTTPStatus() int
}

// CLIError is a categorized failure with an optional hint.
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WithSuggestion sets the hint shown under the message.
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// NewCLIError creates a CLIError without a hint.
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{Type: errorType, Message: message, Cause: cause}
}

var hints = map[ErrorType]string{
	ErrorTypeNetwork:   "Check your connection and api.base_url (DIDE_BASE_URL).",
	ErrorTypeTimeout:   "The backend is slow to answer. Try again, or raise api.timeout.",
	ErrorTypeSession:   "Run 'deserve auth login' to sign in again.",
	ErrorTypeForbidden: "Only the owner, or the admin user, can change this.",
	ErrorTypeNotFound:  "Check the ID; list commands print them.",
	ErrorTypeRateLimit: "Wait a minute before trying again.",
	ErrorTypeServer:    "The backend failed. Try again in a few moments.",
}

func categorized(t ErrorType, message string, cause error) *CLIError {
	return &CLIError{Type: t, Message: message, Cause: cause, Suggestion: hints[t]}
}

// FromStatus maps an HTTP status onto the taxonomy. The server's own
// message is kept whenever there is one.
func FromStatus(status int, err error) *CLIError {
	msg := err.Error()
	var c *CLIError
	switch {
	case status == 400 || status == 422:
		c = categorized(ErrorTypeValidation, msg, err)
	case status == 401:
		c = categorized(ErrorTypeSession, "Invalid session. Login Again", err)
	case status == 403:
		c = categorized(ErrorTypeForbidden, msg, err)
	case status == 404:
		c = categorized(ErrorTypeNotFound, msg, err)
	case status == 429:
		c = categorized(ErrorTypeRateLimit, msg, err)
	case status >= 500:
		c = categorized(ErrorTypeServer, msg, err)
	default:
		c = categorized(ErrorTypeUnknown, msg, err)
	}
	c.StatusCode = status
	return c
}

// CategorizeError classifies err, preferring typed information over text.
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var c *CLIError
	if errors.As(err, &c) {
		return c
	}

	var sc StatusCoder
	if errors.As(err, &sc) && sc.HTTPStatus() > 0 {
		return FromStatus(sc.HTTPStatus(), sc)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return categorized(ErrorTypeTimeout, "Request timed out", err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return categorized(ErrorTypeTimeout, "Request timed out", err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return categorized(ErrorTypeNetwork, fmt.Sprintf("Could not resolve %s", dnsErr.Name), err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return categorized(ErrorTypeNetwork, "Could not reach the backend", err)
	}

	// Resty and the session wrap some failures as plain text.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return categorized(ErrorTypeNetwork, "Could not reach the backend", err)
	case strings.HasPrefix(msg, "not logged in"):
		return categorized(ErrorTypeSession, "Not logged in", err)
	}
	return NewCLIError(ErrorTypeUnknown, msg, err)
}

// FormatError renders err for stderr, hint included.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	c := CategorizeError(err)
	var sb strings.Builder
	sb.WriteString("✗ Error")
	if c.Type != ErrorTypeUnknown {
		fmt.Fprintf(&sb, " (%s)", c.Type)
	}
	fmt.Fprintf(&sb, ": %s\n", c.Message)
	if c.Suggestion != "" {
		fmt.Fprintf(&sb, "\nSuggestion: %s\n", c.Suggestion)
	}
	return sb.String()
}

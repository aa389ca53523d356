package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
)

type statusErr struct {
	status int
	msg    string
}

func (e *statusErr) Error() string   { return e.msg }
func (e *statusErr) HTTPStatus() int { return e.status }

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status  int
		want    ErrorType
		message string
	}{
		{400, ErrorTypeValidation, "title is required"},
		{422, ErrorTypeValidation, "title is required"},
		{401, ErrorTypeSession, "Invalid session. Login Again"},
		{403, ErrorTypeForbidden, "title is required"},
		{404, ErrorTypeNotFound, "title is required"},
		{429, ErrorTypeRateLimit, "title is required"},
		{503, ErrorTypeServer, "title is required"},
		{418, ErrorTypeUnknown, "title is required"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			cause := &statusErr{status: tt.status, msg: "title is required"}
			got := FromStatus(tt.status, cause)
			if got.Type != tt.want {
				t.Errorf("type = %s, want %s", got.Type, tt.want)
			}
			if got.Message != tt.message {
				t.Errorf("message = %q, want %q", got.Message, tt.message)
			}
			if got.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", got.StatusCode, tt.status)
			}
			if !errors.Is(got, cause) {
				t.Error("cause not wrapped")
			}
		})
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"status", fmt.Errorf("load: %w", &statusErr{status: 404, msg: "step not found"}), ErrorTypeNotFound},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), ErrorTypeTimeout},
		{"dns", &net.DNSError{Name: "api.example", Err: "no such host"}, ErrorTypeNetwork},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("refused")}, ErrorTypeNetwork},
		{"refused text", errors.New("Get \"http://localhost:5000/\": connection refused"), ErrorTypeNetwork},
		{"session", errors.New("not logged in: run 'deserve auth login'"), ErrorTypeSession},
		{"plain", errors.New("invalid weekday \"Funday\""), ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeError(tt.err).Type; got != tt.want {
				t.Errorf("type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCategorizeKeepsCLIError(t *testing.T) {
	orig := NewCLIError(ErrorTypeValidation, "bad color", nil).WithSuggestion("Use #RRGGBB")
	if got := CategorizeError(fmt.Errorf("heading: %w", orig)); got != orig {
		t.Errorf("got %+v, want the wrapped CLIError", got)
	}
	if CategorizeError(nil) != nil {
		t.Error("nil error should stay nil")
	}
}

func TestFormatError(t *testing.T) {
	out := FormatError(&statusErr{status: 401, msg: "unauthorized"})
	if !strings.HasPrefix(out, "✗ Error (session): Invalid session. Login Again") {
		t.Errorf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "Suggestion: Run 'deserve auth login'") {
		t.Errorf("missing suggestion: %q", out)
	}

	plain := FormatError(errors.New("token cannot be empty"))
	if plain != "✗ Error: token cannot be empty\n" {
		t.Errorf("plain = %q", plain)
	}
	if FormatError(nil) != "" {
		t.Error("nil should format as empty")
	}
}

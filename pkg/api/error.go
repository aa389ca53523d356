package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// APIError represents a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// HTTPStatus lets pkg/errors categorize the failure.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// ParseError parses an error response from the API. The backend reports
// failures as {"error": "<message>"}.
func ParseError(resp *resty.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil {
		apiErr.Message = strings.TrimSpace(errResp.Error)
	}

	return apiErr
}

// CheckResponse checks if response is successful and returns error if not
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return ParseError(resp)
	}

	return nil
}

// Message returns the server's error text when there is one, else fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func status(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized checks if error is due to missing/invalid authentication
func IsUnauthorized(err error) bool {
	return status(err) == 401
}

// IsForbidden checks if error is due to insufficient permissions
func IsForbidden(err error) bool {
	return status(err) == 403
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	return status(err) == 404
}

// IsServerError checks if error is due to server error (5xx)
func IsServerError(err error) bool {
	return status(err) >= 500
}

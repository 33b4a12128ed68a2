package api

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors for the task tracker client
var (
	ErrMissingBaseURL = errors.New("task tracker URL is not configured")
	ErrMissingToken   = errors.New("API token is not set")
	ErrUnauthorized   = errors.New("API token was rejected")
	ErrTaskNotFound   = errors.New("task not found")
)

// APIError is returned for unexpected non-2xx responses.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:197] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

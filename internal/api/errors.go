package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the server rejected the bearer token or credentials
var ErrUnauthorized = errors.New("authentication failed: invalid or expired token")

// ErrForbidden indicates the authenticated user lacks the required role
var ErrForbidden = errors.New("insufficient permissions")

// ErrNotFound indicates the requested resource does not exist
var ErrNotFound = errors.New("resource not found")

// ErrRateLimited indicates the API rate limit was exceeded
var ErrRateLimited = errors.New("API rate limit exceeded")

// ValidationError represents a 4xx rejection of malformed or conflicting input,
// e.g. a duplicate username or a weak password. Detail carries the
// server-provided message.
type ValidationError struct {
	StatusCode int
	Detail     string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("validation failed: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("validation failed: %s", e.Detail)
}

// ServerError represents a 5xx error from the API
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: HTTP %d", e.StatusCode)
}

package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors mapped from HTTP statuses.
// Use errors.Is() to check.
var (
	// ErrBadRequest marks 400 responses (empty or malformed message).
	ErrBadRequest = errors.New("supportbot: bad request")
	// ErrServiceUnavailable marks 503 responses (index not initialized).
	ErrServiceUnavailable = errors.New("supportbot: service unavailable")
)

// APIError carries the status and detail of a non-2xx response. It
// unwraps to the sentinel matching its status code.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supportbot: %s (status %d)", e.Detail, e.StatusCode)
}

// Unwrap maps the status code onto a sentinel so callers can use
// errors.Is without inspecting codes.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	default:
		return nil
	}
}

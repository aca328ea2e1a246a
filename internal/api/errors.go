package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable wraps transport-level failures (connection refused, timeout)
// where no HTTP response was received at all.
var ErrUnavailable = errors.New("assessment service unavailable")

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Temporary reports whether the request may succeed if repeated.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// IsRetryable reports whether err is worth retrying: transport failures and
// temporary server errors. Client errors (4xx) never are.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return false
}

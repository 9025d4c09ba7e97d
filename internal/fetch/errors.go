package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// Fetch failure kinds. Every error returned by Fetcher.Fetch wraps one of them.
var (
	// ErrUnreachable is returned when no connection could be established.
	ErrUnreachable = errors.New("site unreachable")

	// ErrTimeout is returned when the site did not answer in time.
	ErrTimeout = errors.New("request timed out")

	// ErrForbidden is returned for HTTP 401 and 403 responses.
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound is returned for HTTP 404 and 410 responses.
	ErrNotFound = errors.New("page not found")

	// ErrServerError is returned for HTTP 5xx responses.
	ErrServerError = errors.New("server error")
)

// StatusError is returned when the site answers with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Unwrap maps the status code to a failure kind.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden:
		return ErrForbidden
	case e.Code == http.StatusNotFound || e.Code == http.StatusGone:
		return ErrNotFound
	case e.Code >= 500:
		return ErrServerError
	default:
		return ErrUnreachable
	}
}

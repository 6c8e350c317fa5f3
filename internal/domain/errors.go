package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means upstream reported that the city does not exist (HTTP 404).
	ErrNotFound = errors.New("city not found")

	// ErrMalformedResponse means a required XML node was missing or unparsable.
	ErrMalformedResponse = errors.New("malformed weather response")

	// ErrTransport covers network failures and any non-404, non-200 status.
	ErrTransport = errors.New("weather service unavailable")
)

// FetchError describes why a lookup produced no report. Kind is one of the
// sentinel errors above, so callers branch with errors.Is.
type FetchError struct {
	Kind       error
	City       string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch weather for %q: %v", e.City, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Outcome labels a fetch result for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	default:
		return "transport"
	}
}

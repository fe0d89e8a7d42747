package telegram

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnauthorized is returned when the platform rejects the bot token.
	ErrUnauthorized = errors.New("telegram: unauthorized")

	// ErrEmptyToken is returned when a client is constructed without a token.
	ErrEmptyToken = errors.New("telegram: empty bot token")
)

// TransportError wraps a network or decoding failure. Transport failures are
// transient: the same call may succeed when retried.
type TransportError struct {
	Op  string // API method that failed, e.g. "getUpdates"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("telegram: transport failure in %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a structured rejection from the platform. A non-zero RetryAfter
// marks the error as a rate limit: retryable, but only after the mandated
// wait.
type APIError struct {
	Op          string
	ErrorCode   int
	Description string
	RetryAfter  time.Duration
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("telegram: %s rejected (%d): %s (retry after %s)",
			e.Op, e.ErrorCode, e.Description, e.RetryAfter)
	}
	return fmt.Sprintf("telegram: %s rejected (%d): %s", e.Op, e.ErrorCode, e.Description)
}

// IsTransient reports whether err is worth retrying: transport failures,
// rate limits, and server-side (5xx) rejections. Unauthorized and other
// client-side rejections are permanent.
func IsTransient(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}

	var ae *APIError
	if errors.As(err, &ae) {
		return ae.RetryAfter > 0 || ae.ErrorCode >= 500
	}

	return false
}

// RetryAfter extracts the wait duration mandated by a rate-limit rejection.
// Returns zero for every other error.
func RetryAfter(err error) time.Duration {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.RetryAfter
	}
	return 0
}

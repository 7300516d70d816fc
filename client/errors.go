package client

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the backend has no trip matching the request. Callers
// fall back to a fresh submission.
var ErrNotFound = errors.New("client: no matching trip")

// NetworkError wraps a transport-level failure. The calling UI decides
// whether to retry; the client never retries on its own.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError indicates the credential was rejected (invalid or expired). It is
// surfaced to the caller and never retried silently.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

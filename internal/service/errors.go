package service

import "errors"

// Session operation errors. Backend rejections that carry a detail message
// are returned as *RejectionError; everything else maps to a sentinel.
var (
	// ErrOffline rejects a network-requiring operation before any request
	// is made, because the connectivity watcher reports offline.
	ErrOffline = errors.New("no connection")

	// ErrTimedOut marks an operation whose every attempt timed out.
	ErrTimedOut = errors.New("connection timed out")

	// ErrNetwork marks any other transport-level failure.
	ErrNetwork = errors.New("network error")

	// ErrNotAuthenticated rejects an operation that requires a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired is returned when the backend explicitly reports
	// token expiry; the session and its cache entries have been cleared.
	ErrSessionExpired = errors.New("session expired")
)

// RejectionError is a backend rejection (non-2xx) carrying the backend's own
// detail message, surfaced to the user verbatim.
type RejectionError struct {
	Detail string
}

func (e *RejectionError) Error() string {
	return e.Detail
}

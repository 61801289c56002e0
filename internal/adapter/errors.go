package adapter

import "errors"

// Sentinel errors mapped from HTTP status codes and transport failures.
// Callers match them with [errors.Is].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrTokenExpired        = errors.New("token expired")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrTimeout marks a call whose every attempt ended in a timeout.
	ErrTimeout = errors.New("request timed out")
	// ErrTransport marks a call whose every attempt ended in a non-timeout
	// transport failure (connection refused, DNS failure, ...).
	ErrTransport = errors.New("transport failure")
)

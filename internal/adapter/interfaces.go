// SPDX-License-Identifier: Apache-2.0

// Package adapter provides the transport layer for communicating with the
// GridBoard backend.
//
// The primary abstraction is [BackendGateway], which decouples the session
// service from the HTTP details. The shipped implementation
// ([NewHTTPBackendGateway]) is built on resty and wraps every call in a
// bounded retry loop: a transport-level failure (timeout, connection failure)
// is retried with a constant backoff until the retry budget is exhausted,
// while any HTTP response, including non-2xx, is returned to the caller
// immediately.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrTokenExpired] for the explicit expiry signal,
// [ErrTimeout] for an exhausted retry budget on timeouts).
package adapter

import (
	"context"

	"github.com/gridboard/mobile-core/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_gateway_mock.go -package=mock

// BackendGateway defines the client's view of the GridBoard backend.
// Implementations are responsible for serialisation, authentication header
// management, retry of transient transport failures, and mapping
// transport-level errors to the sentinel values defined in this package.
type BackendGateway interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. An empty string clears it.
	SetToken(token string)

	// Token returns the bearer token currently stored in the gateway, or an
	// empty string if no token has been set yet.
	Token() string

	// Login exchanges credentials for a token and user record via
	// POST /api/auth/login. On success the bearer token is stored via
	// SetToken. Returns an error if the request fails or the server responds
	// with a non-2xx status.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Register creates an account via POST /api/auth/register. The contract
	// is identical to Login, including token storage on success.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// FetchUser returns the current user record from GET /api/auth/me.
	// Requires a bearer token. A 401 carrying the explicit expiry detail is
	// mapped to [ErrTokenExpired]; any other 401 maps to [ErrUnauthorized].
	FetchUser(ctx context.Context) (models.User, error)

	// FetchTiers returns the subscription tier catalog from
	// GET /api/subscription/tiers. No authentication is required.
	FetchTiers(ctx context.Context) (models.TiersResponse, error)

	// Upgrade submits a subscription upgrade via POST /api/subscription/upgrade.
	// Requires a bearer token. The response body is intentionally discarded:
	// the caller is expected to re-fetch the user record as the authoritative
	// post-upgrade state.
	Upgrade(ctx context.Context, req models.UpgradeRequest) error

	// Ping performs a single unretried reachability probe against the
	// backend health endpoint. Used by the connectivity watcher.
	Ping(ctx context.Context) error
}

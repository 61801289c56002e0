// SPDX-License-Identifier: Apache-2.0

// Package store implements the client's durable session cache: a small
// SQLite-backed key/value store that survives process restarts.
//
// The cache holds exactly three logical keys — the bearer token, the last
// confirmed user record and the last tier-catalog response. Values carry no
// TTL: a cached value is valid until explicitly overwritten or removed;
// judging staleness is the caller's responsibility.
package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/session_cache_mock.go -package=mock

// Logical cache keys. The session service is the only writer.
const (
	KeyAuthToken = "auth_token"
	KeyUser      = "current_user"
	KeyTiers     = "tier_catalog"
)

// SessionCache is a durable key/value store with single-key atomicity and no
// transactional guarantees across keys.
type SessionCache interface {
	// Get returns the value stored under key, or [ErrCacheMiss] if the key
	// is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set durably stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error

	// Remove deletes the value stored under key. Removing an absent key is
	// not an error.
	Remove(ctx context.Context, key string) error
}

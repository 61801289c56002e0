// SPDX-License-Identifier: Apache-2.0

// Package service implements the Session & Entitlement Manager: the single
// source of truth for the client's session state and the only component
// permitted to mutate it.
//
// The manager owns the in-memory session (token, user, tier catalog), drives
// login/registration/logout/upgrade flows through the backend gateway,
// reconciles with the durable session cache and the connectivity watcher,
// and answers entitlement queries derived from the current user and the tier
// catalog.
package service

import (
	"context"

	"github.com/gridboard/mobile-core/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/connectivity_source_mock.go -package=mock

// ConnectivitySource is the manager's view of the connectivity watcher: the
// last observed online state plus transition notifications. The manager
// subscribes for the lifetime of the application and unsubscribes on
// teardown.
type ConnectivitySource interface {
	Online() bool
	Subscribe() (int, <-chan bool)
	Unsubscribe(id int)
}

// SessionService is the public surface of the Session & Entitlement Manager.
// Every operation returns an error from the taxonomy in errors.go or nil;
// nothing here is fatal to the process, and entitlement queries on a
// partially-initialized state resolve to safe conservative defaults.
type SessionService interface {
	// Restore loads cached session state (surfacing a cached user
	// immediately, before any network activity), then reconciles with the
	// backend: the tier catalog is loaded and, if a token is cached, the
	// user record is re-validated. Transient failures keep the cached
	// state; only the explicit expiry signal clears it.
	Restore(ctx context.Context)

	// Start subscribes to connectivity transitions and triggers
	// RetryConnection whenever the device comes back online. Stop tears
	// the subscription down.
	Start(ctx context.Context)
	Stop()

	// Login performs a credential exchange. It is rejected with
	// [ErrOffline] before any network attempt when the device is known to
	// be offline. On success the confirmed token and user are persisted to
	// the cache; on failure no state is mutated.
	Login(ctx context.Context, email, password string) error

	// Register creates an account; the contract and failure taxonomy are
	// identical to Login.
	Register(ctx context.Context, email, password, name string) error

	// Logout clears the token, the user and their cache entries
	// unconditionally. It never fails and performs no network call.
	Logout(ctx context.Context)

	// RefreshUser re-runs the user-info fetch if a token is present, and is
	// a no-op otherwise.
	RefreshUser(ctx context.Context) error

	// RetryConnection re-attempts the tier-catalog load and, if a token
	// exists, the user-info fetch. Idempotent and safe to invoke
	// redundantly; intended for connectivity-restored events.
	RetryConnection(ctx context.Context)

	// UpgradeSubscription submits a tier upgrade. Requires both a token and
	// online status, else returns an immediate error without a network
	// call. On success the user record is re-fetched as the authoritative
	// post-upgrade state.
	UpgradeSubscription(ctx context.Context, tier, paymentMethod, reference string) error

	// Session returns a point-in-time snapshot for the presentation layer.
	Session() models.Session

	// MaxElements resolves the element quota of the current user. Anonymous
	// sessions get the conservative default; administrative roles get a
	// fixed elevated quota regardless of catalog contents.
	MaxElements() int

	// FeatureAvailable reports whether the current user's tier grants
	// feature. Exact, case-sensitive matching; the catalog sentinel "all"
	// grants everything.
	FeatureAvailable(feature string) bool

	// PaymentMethods lists the payment options from the last loaded tier
	// catalog, or nil if none has been loaded yet.
	PaymentMethods() []models.PaymentMethod
}

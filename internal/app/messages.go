// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// GridBoard client core.
//
// All Msg* constants are human-readable message strings surfaced to the user
// or matched against backend response bodies. Keeping them in one place
// ensures consistent wording throughout the client.
package app

const (
	// MsgTokenExpired is the literal 401 detail the backend sends when a
	// bearer token has expired. Only this exact detail forces a logout;
	// any other 401 variant preserves the cached session.
	MsgTokenExpired = "Token expired"

	// MsgNoConnection is shown when an operation that requires network is
	// invoked while the device is known to be offline. No request is made.
	MsgNoConnection = "No internet connection"

	// MsgConnectionTimedOut is shown when every attempt of a call timed out.
	MsgConnectionTimedOut = "Connection timed out. Please try again."

	// MsgNetworkError is shown for any other transport-level failure.
	MsgNetworkError = "Network error. Please check your connection."

	// MsgLoginFailed is the generic fallback when the backend rejects a
	// login without a usable detail message.
	MsgLoginFailed = "Login failed"

	// MsgRegistrationFailed is the generic fallback for rejected
	// registrations without a usable detail message.
	MsgRegistrationFailed = "Registration failed"

	// MsgUpgradeFailed is the generic fallback for rejected subscription
	// upgrades without a usable detail message.
	MsgUpgradeFailed = "Upgrade failed"

	// MsgNotAuthenticated is returned when an operation requiring a session
	// is invoked without one.
	MsgNotAuthenticated = "Not signed in"
)

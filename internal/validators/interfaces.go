// SPDX-License-Identifier: Apache-2.0

// Package validators holds input validation for the API surface: structural
// and semantic checks on request bodies, decoupled from the transport layer
// so they stay reusable and testable.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input
// values. Implementations may perform structural validation, semantic
// checks and cross-field rules.
type Validator interface {
	// Validate validates the provided input and optionally restricts
	// validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

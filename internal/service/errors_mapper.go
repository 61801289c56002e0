// SPDX-License-Identifier: Apache-2.0

package service

import (
	"errors"
	"strings"

	"github.com/gridboard/mobile-core/internal/adapter"
	"github.com/gridboard/mobile-core/internal/app"
)

// mapGatewayError translates the gateway's transport error into a session
// business error. Transport failures map to their sentinels; an explicit
// expiry maps to [ErrSessionExpired]; any other backend rejection surfaces
// the backend's detail message, falling back to the supplied generic
// message when the body carried none.
func mapGatewayError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrTimeout):
		return ErrTimedOut
	case errors.Is(err, adapter.ErrTransport):
		return ErrNetwork
	case errors.Is(err, adapter.ErrTokenExpired):
		return ErrSessionExpired
	}

	if detail := extractDetail(err); detail != "" {
		return &RejectionError{Detail: detail}
	}
	return &RejectionError{Detail: fallback}
}

// extractDetail extracts the detail from a message of the form
// "<sentinel>: <detail>".
func extractDetail(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return strings.TrimSpace(msg[idx+2:])
	}
	return ""
}

// UserMessage renders err as the string shown to the user. The presentation
// layer calls this instead of err.Error() so wording stays centralized.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var rejection *RejectionError
	switch {
	case errors.Is(err, ErrOffline):
		return app.MsgNoConnection
	case errors.Is(err, ErrTimedOut):
		return app.MsgConnectionTimedOut
	case errors.Is(err, ErrNetwork):
		return app.MsgNetworkError
	case errors.Is(err, ErrSessionExpired):
		return app.MsgTokenExpired
	case errors.Is(err, ErrNotAuthenticated):
		return app.MsgNotAuthenticated
	case errors.As(err, &rejection):
		return rejection.Detail
	default:
		return err.Error()
	}
}

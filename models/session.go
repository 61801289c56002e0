package models

// SessionState labels the session-level state machine of the client.
type SessionState string

const (
	// SessionRestoring is the initial state: the cache has been read and
	// background validation against the backend is still in flight.
	SessionRestoring SessionState = "restoring"

	// SessionUnauthenticated means no token and no user are held.
	SessionUnauthenticated SessionState = "unauthenticated"

	// SessionAuthenticated means token and user are present and not
	// known-invalid. A cached user surfaced before validation completes
	// still counts as authenticated (optimistic restoration).
	SessionAuthenticated SessionState = "authenticated"
)

// Session is a point-in-time snapshot of the client session handed to the
// presentation layer. User non-nil implies the UI treats the session as
// authenticated even if the token has not yet been validated this run.
type Session struct {
	State    SessionState `json:"state"`
	Token    string       `json:"-"`
	User     *User        `json:"user,omitempty"`
	IsOnline bool         `json:"is_online"`
	Loading  bool         `json:"loading"`
}

// Authenticated reports whether the snapshot should be treated as a signed-in
// session by the UI.
func (s Session) Authenticated() bool {
	return s.User != nil
}

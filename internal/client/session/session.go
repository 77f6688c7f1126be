// Package session holds the explicit session value passed to backends, the
// codec for locally minted tokens, and the persisted session slot.
package session

import "time"

// Session is the caller's current authenticated identity.
// UserID may be empty when the remote API returned an opaque token and no
// user payload.
type Session struct {
	Token    string
	UserID   string
	IssuedAt time.Time
}

// IsZero reports whether no token is held.
func (s Session) IsZero() bool {
	return s.Token == ""
}

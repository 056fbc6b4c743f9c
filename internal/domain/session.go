package domain

import "time"

// Session is the server-trusted record of an authenticated user. It wraps
// the User snapshot taken at login; the snapshot is never refreshed against
// the user collection, so role or name edits after login do not take effect
// until the user logs in again.
type Session struct {
	Token     string
	User      User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

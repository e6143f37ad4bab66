package domain

import "time"

// Session is one portal login. Multiple sessions per client may coexist.
// The store holds only the SHA-256 fingerprint of the opaque token handed to
// the caller; the raw token is never persisted.
type Session struct {
	ID        string
	ClientID  string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its absolute expiry at the
// given instant.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

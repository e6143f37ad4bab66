package domain

import "time"

// Credential is a client's portal login credential. At most one exists per
// client; resets overwrite the hash in place and force Active back on.
// Credentials are never deleted by normal flow, deactivation is the soft
// disable.
type Credential struct {
	ClientID     string
	ClientCode   string // denormalized from the client record, unique
	PasswordHash string // salt:digest or PHC record, see pkg/cryptox
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

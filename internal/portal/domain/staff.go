package domain

import "time"

// Staff roles. Only administrators may manage portal credentials.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// StaffUser is a console staff identity, read-only from the portal core's
// perspective. Bearer tokens resolve to one of these before credential
// management is permitted.
type StaffUser struct {
	ID        string
	Username  string
	Role      string
	CreatedAt time.Time
}

// IsAdmin reports whether the staff user holds the administrator role.
func (u StaffUser) IsAdmin() bool { return u.Role == RoleAdmin }

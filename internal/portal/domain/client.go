package domain

import "time"

// Client is the console-owned client record. The portal core only reads it:
// the code is the login identifier and the contact fields form the profile
// projection returned to a logged-in portal user.
type Client struct {
	ID        string
	Code      string // upper-cased login identifier, unique
	Name      string
	Email     string
	Phone     string
	Company   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

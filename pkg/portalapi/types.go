package portalapi

import "time"

// Portal actions dispatched through the single POST /v1/portal endpoint.
const (
	ActionLogin             = "login"
	ActionVerify            = "verify"
	ActionLogout            = "logout"
	ActionCreateCredentials = "create_credentials"
	ActionToggleActive      = "toggle_active"
)

// SessionHeader carries the client session token for verify/logout actions.
// Staff tokens travel in the standard Authorization header instead.
const SessionHeader = "X-Session-Token"

// ActionRequest is the envelope every portal request carries. Only the
// fields relevant to the requested action are populated.
type ActionRequest struct {
	Action string `json:"action"`

	// login
	ClientCode string `json:"client_code,omitempty"`
	Password   string `json:"password,omitempty"`

	// create_credentials / toggle_active
	ClientID string `json:"client_id,omitempty"`
	Active   *bool  `json:"active,omitempty"`
}

// ClientProfile is the read-only projection of the client record returned to
// a logged-in portal user. The console owns these fields.
type ClientProfile struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// LoginResponse is returned from a successful login action.
type LoginResponse struct {
	SessionToken string        `json:"session_token"`
	ExpiresAt    time.Time     `json:"expires_at"`
	Client       ClientProfile `json:"client"`
}

// VerifyResponse is returned from the verify action. Valid is false for any
// absent, expired, or revoked session; no further detail is disclosed.
type VerifyResponse struct {
	Valid  bool           `json:"valid"`
	Client *ClientProfile `json:"client,omitempty"`
}

// LogoutResponse is returned from the logout action.
type LogoutResponse struct {
	Success bool `json:"success"`
}

// CreateCredentialsResponse is returned from the create_credentials action.
// ClientCode is echoed back so the administrator can hand it to the client
// out-of-band.
type CreateCredentialsResponse struct {
	Success    bool   `json:"success"`
	ClientCode string `json:"client_code"`
}

// ToggleActiveResponse is returned from the toggle_active action.
type ToggleActiveResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is returned from the livez/readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

package portalapi

import (
	"fmt"
	"net/http"

	"github.com/greensoulit/portal-auth/pkg/httpx"
)

// Machine-readable error codes carried in the wire error body.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeForbidden      = "forbidden"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeServerError    = "server_error"
)

// Error is the wire error shape shared by the server handlers and the SDK
// client. All error bodies carry a machine code and a human-readable message.
type Error struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this error to an HTTP response writer.
func (e *Error) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, e)
}

// WithMessage returns a copy of the error carrying a different user-facing
// message. Status and code are preserved so related failures stay
// indistinguishable at the protocol level.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{StatusCode: e.StatusCode, Code: e.Code, Message: msg}
}

var (
	// ErrInvalidRequest is returned for malformed bodies or missing fields.
	ErrInvalidRequest = &Error{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required fields",
	}

	// ErrUnauthorized covers every authentication failure: unknown code,
	// wrong password, disabled account, invalid or expired token.
	ErrUnauthorized = &Error{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "authentication failed",
	}

	// ErrForbidden is returned when a valid staff identity lacks the
	// administrator role.
	ErrForbidden = &Error{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeForbidden,
		Message:    "administrator role required",
	}

	// ErrNotFound is returned when an admin action names an unknown client.
	ErrNotFound = &Error{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "client not found",
	}

	// ErrServerError is returned for persistence failures. Mutations are
	// idempotent, so callers may safely retry.
	ErrServerError = &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

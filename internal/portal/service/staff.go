package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/greensoulit/portal-auth/internal/portal/domain"
	"github.com/greensoulit/portal-auth/internal/portal/store"
	"github.com/greensoulit/portal-auth/pkg/slogx"
)

var (
	// ErrUnauthorized means the bearer token did not resolve to any staff
	// identity: missing, malformed, expired, or unknown subject.
	ErrUnauthorized = errors.New("staff token invalid")

	// ErrForbidden means the token resolved to a real staff member who does
	// not hold the administrator role.
	ErrForbidden = errors.New("administrator role required")
)

// StaffService resolves console staff bearer tokens and gates the
// credential-management actions on the administrator role. Staff tokens are
// HS256 JWTs whose subject is the staff user id; the role is always read
// fresh from the store so a demotion takes effect immediately.
type StaffService struct {
	Store  store.Store
	Secret []byte
}

// AuthorizeAdmin resolves the bearer token and requires the administrator
// role. On success it returns the staff identity for audit attribution; the
// caller gains no capability beyond permission to proceed.
func (s *StaffService) AuthorizeAdmin(ctx context.Context, bearer string) (domain.StaffUser, error) {
	l := slogx.FromContext(ctx)

	if bearer == "" {
		return domain.StaffUser{}, ErrUnauthorized
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(bearer, claims,
		func(t *jwt.Token) (any, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		l.Warn("staff token verification failed", "err", err)
		return domain.StaffUser{}, ErrUnauthorized
	}

	staff, err := s.Store.Staff().GetStaffByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.StaffUser{}, ErrUnauthorized
		}
		return domain.StaffUser{}, err
	}

	if !staff.IsAdmin() {
		l.Warn("credential management denied", "staff_id", staff.ID, "role", staff.Role)
		return domain.StaffUser{}, ErrForbidden
	}

	return staff, nil
}

// MintStaffToken signs a staff bearer token. The console's own login flow
// mints these in production; here it serves operator tooling and tests.
func (s *StaffService) MintStaffToken(staffID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   staffID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
	"github.com/greensoulit/portal-auth/internal/portal/store"
	"github.com/greensoulit/portal-auth/pkg/cryptox"
	"github.com/greensoulit/portal-auth/pkg/idx"
	"github.com/greensoulit/portal-auth/pkg/slogx"
)

// DefaultSessionTTL is the absolute lifetime of a portal session from
// issuance. There is no sliding renewal; clients log in again.
const DefaultSessionTTL = 7 * 24 * time.Hour

var (
	// ErrUnknownCode, ErrAccountDisabled and ErrWrongPassword are all
	// surfaced to callers with the same HTTP status so login responses cannot
	// be used to enumerate valid client codes.
	ErrUnknownCode     = errors.New("code not found")
	ErrAccountDisabled = errors.New("account disabled")
	ErrWrongPassword   = errors.New("wrong password")

	// ErrSessionInvalid covers absent, expired and revoked sessions alike.
	ErrSessionInvalid = errors.New("session invalid")
)

// SessionService owns the portal login lifecycle: issuing sessions on
// successful password checks, resolving presented tokens, and revoking on
// logout. It holds no in-process state; the store is the source of truth so
// any number of instances can run concurrently.
type SessionService struct {
	Store  store.Store
	Hasher cryptox.Hasher
	TTL    time.Duration

	// Now is the clock used for expiry checks; nil means time.Now. Tests
	// override it.
	Now func() time.Time
}

// LoginResult is what a successful login hands back to the wire layer.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Client    domain.Client
}

func (s *SessionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// Login verifies a client code and password and issues a fresh session.
// Multiple live sessions per client are allowed; each login is independent.
func (s *SessionService) Login(ctx context.Context, clientCode, password string) (*LoginResult, error) {
	l := slogx.FromContext(ctx)
	code := strings.ToUpper(strings.TrimSpace(clientCode))

	cred, err := s.Store.Credentials().GetCredentialByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnknownCode
		}
		return nil, err
	}

	if !cred.Active {
		l.Info("login rejected for disabled credential", "client_id", cred.ClientID)
		return nil, ErrAccountDisabled
	}

	if !s.Hasher.Verify(password, cred.PasswordHash) {
		l.Info("login rejected for bad password", "client_id", cred.ClientID)
		return nil, ErrWrongPassword
	}

	client, err := s.Store.Clients().GetClientByID(ctx, cred.ClientID)
	if err != nil {
		return nil, err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := domain.Session{
		ID:        idx.New().String(),
		ClientID:  cred.ClientID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return nil, err
	}

	l.Info("portal login", "client_id", cred.ClientID)

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Client:    client,
	}, nil
}

// Verify resolves a presented session token to its owning client. Beyond the
// store's expiry predicate it re-checks expiry against the service clock and
// re-checks the credential's active flag, so a session cannot outlive a
// deactivation even if the revoke cascade was interrupted.
func (s *SessionService) Verify(ctx context.Context, token string) (domain.Client, error) {
	if token == "" {
		return domain.Client{}, ErrSessionInvalid
	}

	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrSessionInvalid
		}
		return domain.Client{}, err
	}

	if session.Expired(s.now()) {
		return domain.Client{}, ErrSessionInvalid
	}

	cred, err := s.Store.Credentials().GetCredentialByClientID(ctx, session.ClientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrSessionInvalid
		}
		return domain.Client{}, err
	}
	if !cred.Active {
		return domain.Client{}, ErrSessionInvalid
	}

	return s.Store.Clients().GetClientByID(ctx, session.ClientID)
}

// Logout revokes a single session. Revoking a token that is already gone is
// not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
}

package service

import (
	"context"
	"errors"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
	"github.com/greensoulit/portal-auth/internal/portal/store"
	"github.com/greensoulit/portal-auth/pkg/cryptox"
	"github.com/greensoulit/portal-auth/pkg/slogx"
)

// MinPasswordLength is the portal password policy floor.
const MinPasswordLength = 6

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrPasswordTooShort = errors.New("password too short")
)

// CredentialService manages the admin-gated credential lifecycle. Callers
// must already be authorized; this service enforces only data rules.
type CredentialService struct {
	Store  store.Store
	Hasher cryptox.Hasher
}

// CreateOrReset provisions a portal credential for a client, or resets it if
// one already exists. A reset always re-enables login. Returns the client's
// code so the administrator can communicate it out-of-band. The underlying
// upsert is atomic, so concurrent resets converge on one row with one of the
// passwords winning outright.
func (s *CredentialService) CreateOrReset(ctx context.Context, clientID, password string) (string, error) {
	l := slogx.FromContext(ctx)

	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrClientNotFound
		}
		return "", err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return "", err
	}

	err = s.Store.Credentials().UpsertCredential(ctx, domain.Credential{
		ClientID:     client.ID,
		ClientCode:   client.Code,
		PasswordHash: hash,
	})
	if err != nil {
		return "", err
	}

	l.Info("portal credentials set", "client_id", client.ID, "client_code", client.Code)
	return client.Code, nil
}

// SetActive flips the credential's active flag. Deactivation revokes every
// live session for the client in the same transaction, so the flag flip and
// the cascade commit together or not at all. Reactivation creates no
// sessions; the client logs in again.
func (s *CredentialService) SetActive(ctx context.Context, clientID string, active bool) error {
	l := slogx.FromContext(ctx)

	if active {
		if err := mapCredentialErr(s.Store.Credentials().SetActive(ctx, clientID, true)); err != nil {
			return err
		}
		l.Info("portal credentials enabled", "client_id", clientID)
		return nil
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Credentials().SetActive(ctx, clientID, false); err != nil {
			return err
		}
		return tx.Sessions().DeleteSessionsByClientID(ctx, clientID)
	})
	if err != nil {
		return mapCredentialErr(err)
	}

	l.Info("portal credentials disabled, sessions revoked", "client_id", clientID)
	return nil
}

func mapCredentialErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}

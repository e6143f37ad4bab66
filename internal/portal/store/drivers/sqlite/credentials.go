package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
	"github.com/greensoulit/portal-auth/internal/portal/store"
)

type credentialsRepo struct {
	q dbtx
}

const credentialColumns = `client_id, client_code, password_hash, active, created_at, updated_at`

// UpsertCredential is the create-or-reset path. The unique key on client_id
// makes racing upserts converge on a single row with one of the hashes
// winning outright.
func (r *credentialsRepo) UpsertCredential(ctx context.Context, c domain.Credential) error {
	now := time.Now().UTC()

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO client_credentials (client_id, client_code, password_hash, active, created_at, updated_at)
		 VALUES (?, ?, ?, 1, ?, ?)
		 ON CONFLICT (client_id) DO UPDATE SET
		     password_hash = excluded.password_hash,
		     active        = 1,
		     updated_at    = excluded.updated_at`,
		c.ClientID, strings.ToUpper(c.ClientCode), c.PasswordHash, now, now,
	)
	return err
}

func (r *credentialsRepo) GetCredentialByClientID(ctx context.Context, clientID string) (domain.Credential, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+credentialColumns+` FROM client_credentials WHERE client_id = ?`, clientID)
	return scanCredential(row)
}

func (r *credentialsRepo) GetCredentialByCode(ctx context.Context, clientCode string) (domain.Credential, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+credentialColumns+` FROM client_credentials WHERE client_code = ?`,
		strings.ToUpper(clientCode))
	return scanCredential(row)
}

func (r *credentialsRepo) SetActive(ctx context.Context, clientID string, active bool) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE client_credentials SET active = ?, updated_at = ? WHERE client_id = ?`,
		active, time.Now().UTC(), clientID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanCredential(row rowScanner) (domain.Credential, error) {
	var c domain.Credential
	err := row.Scan(&c.ClientID, &c.ClientCode, &c.PasswordHash, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return c, nil
}

package sqlite

import (
	"context"
	"time"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
)

type sessionsRepo struct {
	q dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO client_sessions (id, client_id, token_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.ClientID, s.TokenHash, s.ExpiresAt.UTC(), createdAt,
	)
	return err
}

// GetSessionByTokenHash only returns sessions that have not yet expired.
// Stale rows stay in the table until housekeeping removes them.
func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, client_id, token_hash, expires_at, created_at
		 FROM client_sessions
		 WHERE token_hash = ? AND expires_at > ?`,
		tokenHash, time.Now().UTC(),
	)

	var s domain.Session
	if err := row.Scan(&s.ID, &s.ClientID, &s.TokenHash, &s.ExpiresAt, &s.CreatedAt); err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM client_sessions WHERE token_hash = ?`, tokenHash)
	return err
}

func (r *sessionsRepo) DeleteSessionsByClientID(ctx context.Context, clientID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM client_sessions WHERE client_id = ?`, clientID)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM client_sessions WHERE expires_at <= ?`, time.Now().UTC())
	return err
}

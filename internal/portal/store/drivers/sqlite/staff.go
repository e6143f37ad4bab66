package sqlite

import (
	"context"
	"time"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
)

type staffRepo struct {
	q dbtx
}

func (r *staffRepo) GetStaffByID(ctx context.Context, id string) (domain.StaffUser, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, username, role, created_at FROM staff_users WHERE id = ?`, id)

	var u domain.StaffUser
	if err := row.Scan(&u.ID, &u.Username, &u.Role, &u.CreatedAt); err != nil {
		return domain.StaffUser{}, mapNotFound(err)
	}
	return u, nil
}

func (r *staffRepo) CreateStaffUser(ctx context.Context, u domain.StaffUser) error {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO staff_users (id, username, role, created_at)
		 VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.Role, createdAt,
	)
	return err
}

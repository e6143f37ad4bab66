package service

import (
	"context"
	"testing"
	"time"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
	"github.com/greensoulit/portal-auth/internal/portal/store"
	"github.com/greensoulit/portal-auth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func seedStaff(t *testing.T, st store.Store, role string) domain.StaffUser {
	t.Helper()

	u := domain.StaffUser{
		ID:       idx.New().String(),
		Username: "staff-" + idx.New().String(),
		Role:     role,
	}
	require.NoError(t, st.Staff().CreateStaffUser(context.Background(), u))
	return u
}

func TestAuthorizeAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedStaff(t, st, domain.RoleAdmin)

	svc := &StaffService{Store: st, Secret: []byte("test-secret")}

	token, err := svc.MintStaffToken(admin.ID, time.Hour)
	require.NoError(t, err)

	got, err := svc.AuthorizeAdmin(ctx, token)
	require.NoError(t, err)
	require.Equal(t, admin.ID, got.ID)
}

func TestAuthorizeAdminRejectsNonAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	staff := seedStaff(t, st, domain.RoleStaff)

	svc := &StaffService{Store: st, Secret: []byte("test-secret")}

	token, err := svc.MintStaffToken(staff.ID, time.Hour)
	require.NoError(t, err)

	_, err = svc.AuthorizeAdmin(ctx, token)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeAdminRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	admin := seedStaff(t, st, domain.RoleAdmin)

	svc := &StaffService{Store: st, Secret: []byte("test-secret")}

	// Missing token.
	_, err := svc.AuthorizeAdmin(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)

	// Garbage token.
	_, err = svc.AuthorizeAdmin(ctx, "not.a.jwt")
	require.ErrorIs(t, err, ErrUnauthorized)

	// Expired token.
	expired, err := svc.MintStaffToken(admin.ID, -time.Minute)
	require.NoError(t, err)
	_, err = svc.AuthorizeAdmin(ctx, expired)
	require.ErrorIs(t, err, ErrUnauthorized)

	// Token signed with another secret.
	other := &StaffService{Store: st, Secret: []byte("other-secret")}
	forged, err := other.MintStaffToken(admin.ID, time.Hour)
	require.NoError(t, err)
	_, err = svc.AuthorizeAdmin(ctx, forged)
	require.ErrorIs(t, err, ErrUnauthorized)

	// Valid signature, unknown subject.
	ghost, err := svc.MintStaffToken("no-such-staff", time.Hour)
	require.NoError(t, err)
	_, err = svc.AuthorizeAdmin(ctx, ghost)
	require.ErrorIs(t, err, ErrUnauthorized)
}

package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
	"github.com/greensoulit/portal-auth/internal/portal/service"
	"github.com/greensoulit/portal-auth/internal/portal/store"
	"github.com/greensoulit/portal-auth/internal/portal/store/drivers/sqlite"
	"github.com/greensoulit/portal-auth/pkg/cryptox"
	"github.com/greensoulit/portal-auth/pkg/idx"
	"github.com/greensoulit/portal-auth/pkg/portalapi"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	srv   *httptest.Server
	api   *portalapi.Client
	st    store.Store
	staff *service.StaffService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := cryptox.SaltedSHA256{}

	router := NewRouter(st, "test", logger)
	router.SessionService = &service.SessionService{Store: st, Hasher: hasher}
	router.CredentialService = &service.CredentialService{Store: st, Hasher: hasher}
	router.StaffService = &service.StaffService{Store: st, Secret: []byte("router-test-secret")}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{
		srv:   srv,
		api:   portalapi.NewClient(srv.URL),
		st:    st,
		staff: router.StaffService,
	}
}

func (e *testEnv) seedClient(t *testing.T, code string) domain.Client {
	t.Helper()

	c := domain.Client{
		ID:      idx.New().String(),
		Code:    code,
		Name:    "Northwind Traders",
		Email:   "accounts@northwind.example",
		Company: "Northwind Traders Pty Ltd",
	}
	require.NoError(t, e.st.Clients().CreateClient(context.Background(), c))
	return c
}

func (e *testEnv) mintStaff(t *testing.T, role string) string {
	t.Helper()

	u := domain.StaffUser{
		ID:       idx.New().String(),
		Username: "staff-" + strings.ToLower(role),
		Role:     role,
	}
	require.NoError(t, e.st.Staff().CreateStaffUser(context.Background(), u))

	token, err := e.staff.MintStaffToken(u.ID, time.Hour)
	require.NoError(t, err)
	return token
}

func requireAPIError(t *testing.T, err error, status int) *portalapi.Error {
	t.Helper()

	var apiErr *portalapi.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	return apiErr
}

func (e *testEnv) postRaw(t *testing.T, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(e.srv.URL+"/v1/portal", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestPortalLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	client := env.seedClient(t, "NW-100")
	admin := env.mintStaff(t, domain.RoleAdmin)

	created, err := env.api.CreateCredentials(ctx, admin, client.ID, "hunter22")
	require.NoError(t, err)
	require.True(t, created.Success)
	require.Equal(t, "NW-100", created.ClientCode)

	login, err := env.api.Login(ctx, "nw-100", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, login.SessionToken)
	require.Equal(t, client.ID, login.Client.ID)
	require.WithinDuration(t, time.Now().Add(service.DefaultSessionTTL), login.ExpiresAt, time.Minute)

	verify, err := env.api.Verify(ctx, login.SessionToken)
	require.NoError(t, err)
	require.True(t, verify.Valid)
	require.NotNil(t, verify.Client)
	require.Equal(t, "NW-100", verify.Client.Code)
	require.Equal(t, client.Name, verify.Client.Name)

	require.NoError(t, env.api.Logout(ctx, login.SessionToken))

	verify, err = env.api.Verify(ctx, login.SessionToken)
	require.NoError(t, err)
	require.False(t, verify.Valid)
	require.Nil(t, verify.Client)
}

func TestLoginRejections(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	client := env.seedClient(t, "NW-200")
	admin := env.mintStaff(t, domain.RoleAdmin)

	_, err := env.api.CreateCredentials(ctx, admin, client.ID, "hunter22")
	require.NoError(t, err)

	// Unknown code and wrong password share the status so the responses
	// don't reveal which codes exist.
	_, err = env.api.Login(ctx, "NO-SUCH", "hunter22")
	requireAPIError(t, err, http.StatusUnauthorized)

	_, err = env.api.Login(ctx, "NW-200", "wrongpass")
	requireAPIError(t, err, http.StatusUnauthorized)

	require.NoError(t, env.api.ToggleActive(ctx, admin, client.ID, false))
	_, err = env.api.Login(ctx, "NW-200", "hunter22")
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestDeactivationRevokesSessions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	client := env.seedClient(t, "NW-300")
	admin := env.mintStaff(t, domain.RoleAdmin)

	_, err := env.api.CreateCredentials(ctx, admin, client.ID, "hunter22")
	require.NoError(t, err)

	login, err := env.api.Login(ctx, "NW-300", "hunter22")
	require.NoError(t, err)

	require.NoError(t, env.api.ToggleActive(ctx, admin, client.ID, false))

	verify, err := env.api.Verify(ctx, login.SessionToken)
	require.NoError(t, err)
	require.False(t, verify.Valid)

	// Re-enabling does not resurrect the revoked session.
	require.NoError(t, env.api.ToggleActive(ctx, admin, client.ID, true))
	verify, err = env.api.Verify(ctx, login.SessionToken)
	require.NoError(t, err)
	require.False(t, verify.Valid)

	// A fresh login works once the credential is active again.
	relogin, err := env.api.Login(ctx, "NW-300", "hunter22")
	require.NoError(t, err)
	verify, err = env.api.Verify(ctx, relogin.SessionToken)
	require.NoError(t, err)
	require.True(t, verify.Valid)
}

func TestAdminGate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	client := env.seedClient(t, "NW-400")
	nonAdmin := env.mintStaff(t, domain.RoleStaff)

	_, err := env.api.CreateCredentials(ctx, "", client.ID, "hunter22")
	requireAPIError(t, err, http.StatusUnauthorized)

	err = env.api.ToggleActive(ctx, "", client.ID, false)
	requireAPIError(t, err, http.StatusUnauthorized)

	_, err = env.api.CreateCredentials(ctx, nonAdmin, client.ID, "hunter22")
	requireAPIError(t, err, http.StatusForbidden)

	err = env.api.ToggleActive(ctx, nonAdmin, client.ID, false)
	requireAPIError(t, err, http.StatusForbidden)

	// The gate runs before input validation, so a bad request with no
	// token still reads as unauthorized.
	_, err = env.api.CreateCredentials(ctx, "", client.ID, "x")
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestValidationFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	client := env.seedClient(t, "NW-500")
	admin := env.mintStaff(t, domain.RoleAdmin)

	_, err := env.api.CreateCredentials(ctx, admin, client.ID, "tiny")
	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	require.Contains(t, apiErr.Message, "at least 6")

	_, err = env.api.CreateCredentials(ctx, admin, "", "hunter22")
	requireAPIError(t, err, http.StatusBadRequest)

	_, err = env.api.Login(ctx, "", "hunter22")
	requireAPIError(t, err, http.StatusBadRequest)

	_, err = env.api.Login(ctx, "NW-500", "")
	requireAPIError(t, err, http.StatusBadRequest)

	resp := env.postRaw(t, `{"action":"frobnicate"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.postRaw(t, `{"action":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateCredentialsUnknownClient(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := env.mintStaff(t, domain.RoleAdmin)

	_, err := env.api.CreateCredentials(ctx, admin, idx.New().String(), "hunter22")
	requireAPIError(t, err, http.StatusNotFound)

	err = env.api.ToggleActive(ctx, admin, idx.New().String(), false)
	requireAPIError(t, err, http.StatusNotFound)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.srv.URL + "/livez")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(env.srv.URL + "/readyz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

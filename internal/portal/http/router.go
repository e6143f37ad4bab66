package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/greensoulit/portal-auth/internal/portal/service"
	"github.com/greensoulit/portal-auth/internal/portal/store"
	"github.com/greensoulit/portal-auth/pkg/httpx"
	"github.com/greensoulit/portal-auth/pkg/portalapi"
	"github.com/greensoulit/portal-auth/pkg/slogx"
)

// actionHandler handles one portal action. The dispatcher has already
// decoded the request envelope.
type actionHandler interface {
	Handle(w http.ResponseWriter, r *http.Request, req portalapi.ActionRequest)
}

// Router holds shared dependencies for HTTP handlers and dispatches the
// portal actions from a single entry point.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	SessionService    *service.SessionService
	CredentialService *service.CredentialService
	StaffService      *service.StaffService

	actions map[string]actionHandler
}

func NewRouter(st store.Store, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes wires the action table and registers the endpoints. Call after
// the services are assigned.
func (r *Router) ApplyRoutes() {
	r.actions = map[string]actionHandler{
		portalapi.ActionLogin:             &LoginHandler{Sessions: r.SessionService},
		portalapi.ActionVerify:            &VerifyHandler{Sessions: r.SessionService},
		portalapi.ActionLogout:            &LogoutHandler{Sessions: r.SessionService},
		portalapi.ActionCreateCredentials: &CreateCredentialsHandler{Staff: r.StaffService, Credentials: r.CredentialService},
		portalapi.ActionToggleActive:      &ToggleActiveHandler{Staff: r.StaffService, Credentials: r.CredentialService},
	}

	// One entry point for every action; login shares the strict budget with
	// the rest, which keeps brute force attempts boxed in.
	r.Mux.Handle("POST /v1/portal",
		httpx.Chain(http.HandlerFunc(r.handleAction),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.registerSystem()
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handleAction decodes the request envelope and dispatches by action name.
func (r *Router) handleAction(w http.ResponseWriter, req *http.Request) {
	log := slogx.FromContext(req.Context())

	var body portalapi.ActionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		portalapi.ErrInvalidRequest.WithMessage("invalid JSON in request body").WriteError(w)
		return
	}

	handler, ok := r.actions[body.Action]
	if !ok {
		log.Info("unknown portal action", "action", body.Action)
		portalapi.ErrInvalidRequest.WithMessage("unknown action").WriteError(w)
		return
	}

	handler.Handle(w, req, body)
}

// bearerToken extracts the staff bearer token from the Authorization header,
// or returns "" when absent.
func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
}

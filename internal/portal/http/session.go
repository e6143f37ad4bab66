package http

import (
	"errors"
	"net/http"

	"github.com/greensoulit/portal-auth/internal/portal/service"
	"github.com/greensoulit/portal-auth/pkg/httpx"
	"github.com/greensoulit/portal-auth/pkg/portalapi"
	"github.com/greensoulit/portal-auth/pkg/slogx"
)

type VerifyHandler struct {
	Sessions *service.SessionService
}

// Handle resolves the session header to a client profile. Invalid sessions
// get a bare {valid:false} with no further detail.
func (h *VerifyHandler) Handle(w http.ResponseWriter, r *http.Request, _ portalapi.ActionRequest) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	client, err := h.Sessions.Verify(ctx, r.Header.Get(portalapi.SessionHeader))
	if err != nil {
		if errors.Is(err, service.ErrSessionInvalid) {
			httpx.WriteJSON(w, http.StatusUnauthorized, portalapi.VerifyResponse{Valid: false})
			return
		}
		log.Error("session verify failed", "error", err)
		portalapi.ErrServerError.WriteError(w)
		return
	}

	profile := profileOf(client)
	httpx.WriteJSON(w, http.StatusOK, portalapi.VerifyResponse{
		Valid:  true,
		Client: &profile,
	})
}

type LogoutHandler struct {
	Sessions *service.SessionService
}

// Handle revokes the presented session. Best effort: a token that is
// already gone, or even a store failure, still reads as success to the
// caller, the session will not outlive its expiry either way.
func (h *LogoutHandler) Handle(w http.ResponseWriter, r *http.Request, _ portalapi.ActionRequest) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.Sessions.Logout(ctx, r.Header.Get(portalapi.SessionHeader)); err != nil {
		log.Warn("logout revoke failed", "error", err)
	}

	httpx.WriteJSON(w, http.StatusOK, portalapi.LogoutResponse{Success: true})
}

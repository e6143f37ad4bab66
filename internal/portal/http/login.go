package http

import (
	"errors"
	"net/http"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
	"github.com/greensoulit/portal-auth/internal/portal/service"
	"github.com/greensoulit/portal-auth/pkg/httpx"
	"github.com/greensoulit/portal-auth/pkg/portalapi"
	"github.com/greensoulit/portal-auth/pkg/slogx"
)

type LoginHandler struct {
	Sessions *service.SessionService
}

// Handle exchanges a client code and password for a session token. All three
// rejection reasons share the 401 status so responses cannot be used to
// probe which client codes exist; only the message differs.
func (h *LoginHandler) Handle(w http.ResponseWriter, r *http.Request, req portalapi.ActionRequest) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if req.ClientCode == "" || req.Password == "" {
		portalapi.ErrInvalidRequest.WithMessage("client_code and password are required").WriteError(w)
		return
	}

	result, err := h.Sessions.Login(ctx, req.ClientCode, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCode),
			errors.Is(err, service.ErrAccountDisabled),
			errors.Is(err, service.ErrWrongPassword):
			portalapi.ErrUnauthorized.WithMessage(err.Error()).WriteError(w)
		default:
			log.Error("login failed", "error", err)
			portalapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalapi.LoginResponse{
		SessionToken: result.Token,
		ExpiresAt:    result.ExpiresAt,
		Client:       profileOf(result.Client),
	})
}

func profileOf(c domain.Client) portalapi.ClientProfile {
	return portalapi.ClientProfile{
		ID:      c.ID,
		Code:    c.Code,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
	}
}

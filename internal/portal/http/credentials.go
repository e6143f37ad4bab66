package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/greensoulit/portal-auth/internal/portal/domain"
	"github.com/greensoulit/portal-auth/internal/portal/service"
	"github.com/greensoulit/portal-auth/pkg/httpx"
	"github.com/greensoulit/portal-auth/pkg/portalapi"
	"github.com/greensoulit/portal-auth/pkg/slogx"
)

// authorizeStaff runs the admin gate shared by both credential-management
// actions. It writes the error response itself and reports success.
func authorizeStaff(w http.ResponseWriter, r *http.Request, staff *service.StaffService) (domain.StaffUser, bool) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	admin, err := staff.AuthorizeAdmin(ctx, bearerToken(r))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			portalapi.ErrUnauthorized.WithMessage("staff authentication required").WriteError(w)
		case errors.Is(err, service.ErrForbidden):
			portalapi.ErrForbidden.WriteError(w)
		default:
			log.Error("staff authorization failed", "error", err)
			portalapi.ErrServerError.WriteError(w)
		}
		return domain.StaffUser{}, false
	}
	return admin, true
}

type CreateCredentialsHandler struct {
	Staff       *service.StaffService
	Credentials *service.CredentialService
}

// Handle provisions or resets a client's portal credential. The admin gate
// runs before any input is touched.
func (h *CreateCredentialsHandler) Handle(w http.ResponseWriter, r *http.Request, req portalapi.ActionRequest) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	admin, ok := authorizeStaff(w, r, h.Staff)
	if !ok {
		return
	}

	if req.ClientID == "" {
		portalapi.ErrInvalidRequest.WithMessage("client_id is required").WriteError(w)
		return
	}

	code, err := h.Credentials.CreateOrReset(ctx, req.ClientID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort):
			msg := fmt.Sprintf("password must be at least %d characters", service.MinPasswordLength)
			portalapi.ErrInvalidRequest.WithMessage(msg).WriteError(w)
		case errors.Is(err, service.ErrClientNotFound):
			portalapi.ErrNotFound.WriteError(w)
		default:
			log.Error("create credentials failed", "error", err, "client_id", req.ClientID)
			portalapi.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("credentials created", "client_id", req.ClientID, "staff_id", admin.ID)
	httpx.WriteJSON(w, http.StatusOK, portalapi.CreateCredentialsResponse{
		Success:    true,
		ClientCode: code,
	})
}

type ToggleActiveHandler struct {
	Staff       *service.StaffService
	Credentials *service.CredentialService
}

// Handle enables or disables a client's portal credential. Disabling
// revokes the client's sessions in the same transaction.
func (h *ToggleActiveHandler) Handle(w http.ResponseWriter, r *http.Request, req portalapi.ActionRequest) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	admin, ok := authorizeStaff(w, r, h.Staff)
	if !ok {
		return
	}

	if req.ClientID == "" || req.Active == nil {
		portalapi.ErrInvalidRequest.WithMessage("client_id and active are required").WriteError(w)
		return
	}

	if err := h.Credentials.SetActive(ctx, req.ClientID, *req.Active); err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			portalapi.ErrNotFound.WriteError(w)
		default:
			log.Error("toggle active failed", "error", err, "client_id", req.ClientID)
			portalapi.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("credentials toggled", "client_id", req.ClientID, "active", *req.Active, "staff_id", admin.ID)
	httpx.WriteJSON(w, http.StatusOK, portalapi.ToggleActiveResponse{Success: true})
}

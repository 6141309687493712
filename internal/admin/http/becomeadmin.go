package http

import (
	"net/http"

	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/keystead/identity-admin/pkg/httpx"
)

// BecomeAdminHandler handles GET /BecomeAdmin.
type BecomeAdminHandler struct {
	Service *service.BecomeAdminService
}

// HandleClaim handles GET /BecomeAdmin
//
//	@Summary		Claim the administrator role
//	@Description	Grants the administrator role to the caller if nobody holds it yet. Only the very first caller per deployment succeeds.
//	@Tags			BecomeAdmin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	adminsdk.BecomeAdminResponse	"Role granted to the caller"
//	@Failure		403	{object}	adminsdk.BecomeAdminResponse	"Role already claimed"
//	@Router			/BecomeAdmin [get].
func (h *BecomeAdminHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	granted, err := h.Service.Claim(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if !granted {
		status = http.StatusForbidden
	}
	httpx.WriteJSON(w, status, adminsdk.BecomeAdminResponse{Granted: granted})
}

package http

import (
	"net/http"

	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/keystead/identity-admin/pkg/httpx"
)

// AgentTypesHandler handles GET /AgentTypes.
type AgentTypesHandler struct {
	Service *service.AgentTypesService
}

// HandleList handles GET /AgentTypes
//
//	@Summary		List agent types
//	@Description	Account classifications from the external directory service. Falls back to a fixed list if the directory is unreachable, so this endpoint never fails.
//	@Tags			AgentTypes
//	@Produce		json
//	@Success		200	{array}	adminsdk.AgentType
//	@Router			/AgentTypes [get].
func (h *AgentTypesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	types := h.Service.ListAgentTypes(r.Context())

	payload := make([]adminsdk.AgentType, 0, len(types))
	for _, t := range types {
		payload = append(payload, adminsdk.AgentType{Code: t.Code, Name: t.Name})
	}
	httpx.WriteJSON(w, http.StatusOK, payload)
}

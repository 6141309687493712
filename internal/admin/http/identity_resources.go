package http

import (
	"encoding/json"
	"net/http"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/keystead/identity-admin/pkg/httpx"
)

// IdentityResourcesHandler handles the /IdentityResources registry endpoints.
type IdentityResourcesHandler struct {
	Service *service.IdentityResourcesService
}

func identityResourceToWire(ir domain.IdentityResource) adminsdk.IdentityResource {
	return adminsdk.IdentityResource{
		ID:          ir.ID,
		Name:        ir.Name,
		DisplayName: ir.DisplayName,
		Description: ir.Description,
		Enabled:     ir.Enabled,
	}
}

func identityResourceFromWire(ir adminsdk.IdentityResource) domain.IdentityResource {
	return domain.IdentityResource{
		ID:          ir.ID,
		Name:        ir.Name,
		DisplayName: ir.DisplayName,
		Description: ir.Description,
		Enabled:     ir.Enabled,
	}
}

// HandleList handles GET /IdentityResources
//
//	@Summary	List identity resources
//	@Tags		IdentityResources
//	@Produce	json
//	@Security	BearerAuth
//	@Param		from	query		int		false	"Rows to skip"
//	@Param		amount	query		int		false	"Page size (omit for all, 0 for none)"
//	@Param		filter	query		string	false	"Free-text or keyword filter"
//	@Success	200		{object}	adminsdk.ListResponse[adminsdk.IdentityResource]
//	@Router		/IdentityResources [get].
func (h *IdentityResourcesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	from, amount, filter := parseListParams(r)

	total, resources, err := h.Service.ListIdentityResources(r.Context(), from, amount, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]adminsdk.IdentityResource, 0, len(resources))
	for _, ir := range resources {
		payload = append(payload, identityResourceToWire(ir))
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.ListResponse[adminsdk.IdentityResource]{
		Amount:  total,
		Payload: payload,
	})
}

// HandleCreate handles POST /IdentityResources
//
//	@Summary	Create identity resource
//	@Tags		IdentityResources
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.IdentityResource	true	"Identity resource candidate"
//	@Success	200		{object}	adminsdk.IdentityResource
//	@Failure	400		{array}		string	"Validation messages"
//	@Router		/IdentityResources [post].
func (h *IdentityResourcesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.IdentityResource
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	created, err := h.Service.CreateIdentityResource(r.Context(), identityResourceFromWire(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, identityResourceToWire(created))
}

// HandleUpdate handles PUT /IdentityResources
//
//	@Summary	Update identity resource
//	@Tags		IdentityResources
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.IdentityResource	true	"Identity resource candidate including id"
//	@Success	200		{object}	adminsdk.IdentityResource
//	@Failure	400		{array}		string	"Validation messages"
//	@Failure	404		"Identity resource does not exist"
//	@Router		/IdentityResources [put].
func (h *IdentityResourcesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.IdentityResource
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	updated, err := h.Service.UpdateIdentityResource(r.Context(), identityResourceFromWire(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, identityResourceToWire(updated))
}

// HandleDelete handles DELETE /IdentityResources?id=
//
//	@Summary	Delete identity resource
//	@Tags		IdentityResources
//	@Security	BearerAuth
//	@Param		id	query	int	true	"Identity resource id"
//	@Success	200	"Deleted"
//	@Failure	404	"Identity resource does not exist"
//	@Router		/IdentityResources [delete].
func (h *IdentityResourcesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIntID(r)
	if !ok {
		writeBadRequest(w, "Invalid id")
		return
	}

	if err := h.Service.DeleteIdentityResource(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/keystead/identity-admin/pkg/httpx"
)

// ResourcesHandler handles the /Resources registry endpoints.
type ResourcesHandler struct {
	Service *service.ResourcesService
}

func resourceToWire(r domain.Resource) adminsdk.Resource {
	return adminsdk.Resource{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Enabled:     r.Enabled,
		Scopes:      r.Scopes,
	}
}

func resourceFromWire(r adminsdk.Resource) domain.Resource {
	return domain.Resource{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		Enabled:     r.Enabled,
		Scopes:      r.Scopes,
	}
}

// HandleList handles GET /Resources
//
//	@Summary	List API resources
//	@Tags		Resources
//	@Produce	json
//	@Security	BearerAuth
//	@Param		from	query		int		false	"Rows to skip"
//	@Param		amount	query		int		false	"Page size (omit for all, 0 for none)"
//	@Param		filter	query		string	false	"Free-text or keyword filter"
//	@Success	200		{object}	adminsdk.ListResponse[adminsdk.Resource]
//	@Router		/Resources [get].
func (h *ResourcesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	from, amount, filter := parseListParams(r)

	total, resources, err := h.Service.ListResources(r.Context(), from, amount, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]adminsdk.Resource, 0, len(resources))
	for _, res := range resources {
		payload = append(payload, resourceToWire(res))
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.ListResponse[adminsdk.Resource]{
		Amount:  total,
		Payload: payload,
	})
}

// HandleCreate handles POST /Resources
//
//	@Summary	Create API resource
//	@Tags		Resources
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.Resource	true	"Resource candidate"
//	@Success	200		{object}	adminsdk.Resource
//	@Failure	400		{array}		string	"Validation messages"
//	@Router		/Resources [post].
func (h *ResourcesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.Resource
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	created, err := h.Service.CreateResource(r.Context(), resourceFromWire(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resourceToWire(created))
}

// HandleUpdate handles PUT /Resources
//
//	@Summary	Update API resource
//	@Tags		Resources
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.Resource	true	"Resource candidate including id"
//	@Success	200		{object}	adminsdk.Resource
//	@Failure	400		{array}		string	"Validation messages"
//	@Failure	404		"Resource does not exist"
//	@Router		/Resources [put].
func (h *ResourcesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.Resource
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	updated, err := h.Service.UpdateResource(r.Context(), resourceFromWire(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resourceToWire(updated))
}

// HandleDelete handles DELETE /Resources?id=
//
//	@Summary	Delete API resource
//	@Tags		Resources
//	@Security	BearerAuth
//	@Param		id	query	int	true	"Resource id"
//	@Success	200	"Deleted"
//	@Failure	404	"Resource does not exist"
//	@Router		/Resources [delete].
func (h *ResourcesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIntID(r)
	if !ok {
		writeBadRequest(w, "Invalid id")
		return
	}

	if err := h.Service.DeleteResource(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

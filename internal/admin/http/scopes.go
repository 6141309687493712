package http

import (
	"encoding/json"
	"net/http"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/keystead/identity-admin/pkg/httpx"
)

// ScopesHandler handles the /Scopes registry endpoints.
type ScopesHandler struct {
	Service *service.ScopesService
}

func scopeToWire(s domain.Scope) adminsdk.Scope {
	return adminsdk.Scope{
		ID:          s.ID,
		Name:        s.Name,
		DisplayName: s.DisplayName,
		Description: s.Description,
		Enabled:     s.Enabled,
	}
}

func scopeFromWire(s adminsdk.Scope) domain.Scope {
	return domain.Scope{
		ID:          s.ID,
		Name:        s.Name,
		DisplayName: s.DisplayName,
		Description: s.Description,
		Enabled:     s.Enabled,
	}
}

// HandleList handles GET /Scopes
//
//	@Summary	List API scopes
//	@Tags		Scopes
//	@Produce	json
//	@Security	BearerAuth
//	@Param		from	query		int		false	"Rows to skip"
//	@Param		amount	query		int		false	"Page size (omit for all, 0 for none)"
//	@Param		filter	query		string	false	"Free-text or keyword filter"
//	@Success	200		{object}	adminsdk.ListResponse[adminsdk.Scope]
//	@Router		/Scopes [get].
func (h *ScopesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	from, amount, filter := parseListParams(r)

	total, scopes, err := h.Service.ListScopes(r.Context(), from, amount, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]adminsdk.Scope, 0, len(scopes))
	for _, s := range scopes {
		payload = append(payload, scopeToWire(s))
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.ListResponse[adminsdk.Scope]{
		Amount:  total,
		Payload: payload,
	})
}

// HandleCreate handles POST /Scopes
//
//	@Summary	Create API scope
//	@Tags		Scopes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.Scope	true	"Scope candidate"
//	@Success	200		{object}	adminsdk.Scope
//	@Failure	400		{array}		string	"Validation messages"
//	@Router		/Scopes [post].
func (h *ScopesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.Scope
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	created, err := h.Service.CreateScope(r.Context(), scopeFromWire(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, scopeToWire(created))
}

// HandleUpdate handles PUT /Scopes
//
//	@Summary	Update API scope
//	@Tags		Scopes
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.Scope	true	"Scope candidate including id"
//	@Success	200		{object}	adminsdk.Scope
//	@Failure	400		{array}		string	"Validation messages"
//	@Failure	404		"Scope does not exist"
//	@Router		/Scopes [put].
func (h *ScopesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.Scope
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	updated, err := h.Service.UpdateScope(r.Context(), scopeFromWire(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, scopeToWire(updated))
}

// HandleDelete handles DELETE /Scopes?id=
//
//	@Summary	Delete API scope
//	@Tags		Scopes
//	@Security	BearerAuth
//	@Param		id	query	int	true	"Scope id"
//	@Success	200	"Deleted"
//	@Failure	404	"Scope does not exist"
//	@Router		/Scopes [delete].
func (h *ScopesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIntID(r)
	if !ok {
		writeBadRequest(w, "Invalid id")
		return
	}

	if err := h.Service.DeleteScope(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

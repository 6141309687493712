package http

import (
	"encoding/json"
	"net/http"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/keystead/identity-admin/pkg/httpx"
)

// ClientsHandler handles the /Clients registry endpoints.
type ClientsHandler struct {
	Service *service.ClientsService
}

func clientToWire(c domain.Client) adminsdk.Client {
	return adminsdk.Client{
		ID:                     c.ID,
		ClientID:               c.ClientID,
		ClientName:             c.ClientName,
		Description:            c.Description,
		Enabled:                c.Enabled,
		RedirectURIs:           c.RedirectURIs,
		Scopes:                 c.Scopes,
		CorsOrigins:            c.CorsOrigins,
		PostLogoutRedirectURIs: c.PostLogoutRedirectURIs,
		GrantTypes:             c.GrantTypes,
		AllowOfflineAccess:     c.AllowOfflineAccess,
		RequireClientSecret:    c.RequireClientSecret,
		IncludeJWTID:           c.IncludeJWTID,
	}
}

// clientFromWire takes only the caller-owned fields. Derived and protocol
// fields are recomputed by the service on every write.
func clientFromWire(c adminsdk.Client) domain.Client {
	return domain.Client{
		ID:           c.ID,
		ClientID:     c.ClientID,
		ClientName:   c.ClientName,
		Description:  c.Description,
		Enabled:      c.Enabled,
		RedirectURIs: c.RedirectURIs,
		Scopes:       c.Scopes,
	}
}

// HandleList handles GET /Clients
//
//	@Summary	List clients
//	@Tags		Clients
//	@Produce	json
//	@Security	BearerAuth
//	@Param		from	query		int		false	"Rows to skip"
//	@Param		amount	query		int		false	"Page size (omit for all, 0 for none)"
//	@Param		filter	query		string	false	"Free-text or keyword filter"
//	@Success	200		{object}	adminsdk.ListResponse[adminsdk.Client]
//	@Router		/Clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	from, amount, filter := parseListParams(r)

	total, clients, err := h.Service.ListClients(r.Context(), from, amount, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]adminsdk.Client, 0, len(clients))
	for _, c := range clients {
		payload = append(payload, clientToWire(c))
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.ListResponse[adminsdk.Client]{
		Amount:  total,
		Payload: payload,
	})
}

// HandleCreate handles POST /Clients
//
//	@Summary	Create client
//	@Tags		Clients
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.Client	true	"Client candidate"
//	@Success	200		{object}	adminsdk.Client
//	@Failure	400		{array}		string	"Validation messages"
//	@Router		/Clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.Client
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	created, err := h.Service.CreateClient(r.Context(), clientFromWire(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clientToWire(created))
}

// HandleUpdate handles PUT /Clients
//
//	@Summary	Update client
//	@Tags		Clients
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.Client	true	"Client candidate including id"
//	@Success	200		{object}	adminsdk.Client
//	@Failure	400		{array}		string	"Validation messages"
//	@Failure	404		"Client does not exist"
//	@Router		/Clients [put].
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.Client
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	updated, err := h.Service.UpdateClient(r.Context(), clientFromWire(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clientToWire(updated))
}

// HandleDelete handles DELETE /Clients?id=
//
//	@Summary	Delete client
//	@Tags		Clients
//	@Security	BearerAuth
//	@Param		id	query	int	true	"Client id"
//	@Success	200	"Deleted"
//	@Failure	404	"Client does not exist"
//	@Router		/Clients [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIntID(r)
	if !ok {
		writeBadRequest(w, "Invalid id")
		return
	}

	if err := h.Service.DeleteClient(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

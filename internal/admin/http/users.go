package http

import (
	"encoding/json"
	"net/http"

	"github.com/keystead/identity-admin/internal/admin/domain"
	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/pkg/adminsdk"
	"github.com/keystead/identity-admin/pkg/httpx"
)

// UsersHandler handles the /Users registry endpoints plus the anonymous
// email confirmation entry point.
type UsersHandler struct {
	Service *service.UsersService
}

func userToWire(a service.UserAccount) adminsdk.User {
	return adminsdk.User{
		ID:        a.ID,
		Name:      a.Name,
		AgentType: a.AgentType,
		Confirmed: a.Confirmed,
		IsAdmin:   a.IsAdmin,
	}
}

func userFromWire(u adminsdk.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Name:      u.Name,
		AgentType: u.AgentType,
		Confirmed: u.Confirmed,
	}
}

// HandleList handles GET /Users
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		from	query		int		false	"Rows to skip"
//	@Param		amount	query		int		false	"Page size (omit for all, 0 for none)"
//	@Param		filter	query		string	false	"Name substring, agent type number, or confirmed/admin keyword"
//	@Success	200		{object}	adminsdk.ListResponse[adminsdk.User]
//	@Router		/Users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	from, amount, filter := parseListParams(r)

	total, accounts, err := h.Service.ListUsers(r.Context(), from, amount, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	payload := make([]adminsdk.User, 0, len(accounts))
	for _, a := range accounts {
		payload = append(payload, userToWire(a))
	}
	httpx.WriteJSON(w, http.StatusOK, adminsdk.ListResponse[adminsdk.User]{
		Amount:  total,
		Payload: payload,
	})
}

// HandleCreate handles POST /Users
//
//	@Summary	Create user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.User	true	"User candidate"
//	@Success	200		{object}	adminsdk.User
//	@Failure	400		{array}		string	"Validation messages"
//	@Router		/Users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.User
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	created, err := h.Service.CreateUser(r.Context(), userFromWire(req), req.IsAdmin)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userToWire(created))
}

// HandleUpdate handles PUT /Users
//
//	@Summary	Update user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		adminsdk.User	true	"User candidate including id"
//	@Success	200		{object}	adminsdk.User
//	@Failure	400		{array}		string	"Validation messages"
//	@Failure	404		"User does not exist"
//	@Router		/Users [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.User
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON in request body")
		return
	}

	updated, err := h.Service.UpdateUser(r.Context(), userFromWire(req), req.IsAdmin)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userToWire(updated))
}

// HandleDelete handles DELETE /Users?id=
//
//	@Summary	Delete user
//	@Tags		Users
//	@Security	BearerAuth
//	@Param		id	query	string	true	"User id"
//	@Success	200	"Deleted"
//	@Failure	404	"User does not exist"
//	@Router		/Users [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeBadRequest(w, "Invalid id")
		return
	}

	if err := h.Service.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleConfirmEmail handles POST /ConfirmEmail?id=
//
//	@Summary		Confirm a user account
//	@Description	Anonymous endpoint reached from the confirmation link. Flips the confirmed flag and notifies the downstream system best-effort.
//	@Tags			Users
//	@Param			id	query	string	true	"User id"
//	@Success		200	"Confirmed"
//	@Failure		404	"User does not exist"
//	@Router			/ConfirmEmail [post].
func (h *UsersHandler) HandleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeBadRequest(w, "Invalid id")
		return
	}

	if err := h.Service.Confirm(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

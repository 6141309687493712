package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/pkg/httpx"
	"github.com/keystead/identity-admin/pkg/slogx"
)

// parseListParams reads the from/amount/filter triple shared by every list
// endpoint. Missing or malformed numbers fall back to "from the start" and
// "everything". An explicit amount=0 is honored and yields an empty page.
func parseListParams(r *http.Request) (from, amount int, filter string) {
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("from")); err == nil && v > 0 {
		from = v
	}
	amount = service.AllRows
	if v, err := strconv.Atoi(q.Get("amount")); err == nil && v >= 0 {
		amount = v
	}
	return from, amount, q.Get("filter")
}

// writeServiceError translates service layer failures into the binding
// status codes: validation failures become a 400 with the bare array of
// messages, missing targets become an empty 404, everything else is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, verr.Messages)
	case errors.Is(err, service.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		slogx.FromContext(r.Context()).Error("request failed",
			"error", err, "method", r.Method, "path", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	httpx.WriteJSON(w, http.StatusBadRequest, []string{msg})
}

// parseIntID reads the integer ?id= parameter used by delete endpoints.
func parseIntID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	return id, err == nil
}

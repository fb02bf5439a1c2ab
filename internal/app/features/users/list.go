package users

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/teacherhub/internal/app/store/users"
	"github.com/dalemusser/teacherhub/internal/app/system/paging"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
	"github.com/dalemusser/waffle/pantry/query"
)

// HandleList serves GET /api/users?page&limit&role.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, limit := paging.Parse(r)
	role := query.Get(r, "role")

	store := userstore.New(h.DB)
	list, total, err := store.List(ctx, page, limit, role)
	if err != nil {
		webapi.Internal(w, requestid.Logger(r, h.Log), "listing users", err)
		return
	}

	webapi.OKList(w, list, paging.NewMeta(page, limit, total))
}

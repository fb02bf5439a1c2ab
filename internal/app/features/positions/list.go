package positions

import (
	"context"
	"net/http"

	positionstore "github.com/dalemusser/teacherhub/internal/app/store/positions"
	"github.com/dalemusser/teacherhub/internal/app/system/paging"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
)

// HandleList serves GET /api/teacher-positions?page&limit.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, limit := paging.Parse(r)

	store := positionstore.New(h.DB)
	list, total, err := store.List(ctx, page, limit)
	if err != nil {
		webapi.Internal(w, requestid.Logger(r, h.Log), "listing positions", err)
		return
	}

	webapi.OKList(w, list, paging.NewMeta(page, limit, total))
}

package teachers

import (
	"context"
	"net/http"

	"github.com/dalemusser/teacherhub/internal/app/store/queries/teacherroster"
	"github.com/dalemusser/teacherhub/internal/app/system/paging"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
)

// HandleList serves GET /api/teachers?page&limit with the joined roster,
// newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, limit := paging.Parse(r)

	rows, total, err := teacherroster.List(ctx, h.DB, page, limit)
	if err != nil {
		webapi.Internal(w, requestid.Logger(r, h.Log), "listing teachers", err)
		return
	}

	webapi.OKList(w, rows, paging.NewMeta(page, limit, total))
}

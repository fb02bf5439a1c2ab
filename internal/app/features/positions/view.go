package positions

import (
	"context"
	"errors"
	"net/http"

	positionstore "github.com/dalemusser/teacherhub/internal/app/store/positions"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleGet serves GET /api/teacher-positions/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.BadRequest(w, "invalid id")
		return
	}

	store := positionstore.New(h.DB)
	p, err := store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.NotFound(w, "position not found")
			return
		}
		webapi.Internal(w, requestid.Logger(r, h.Log), "loading position", err)
		return
	}

	webapi.OK(w, p)
}

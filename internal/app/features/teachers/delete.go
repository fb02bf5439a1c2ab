package teachers

import (
	"context"
	"errors"
	"net/http"

	teacherstore "github.com/dalemusser/teacherhub/internal/app/store/teachers"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleDelete serves DELETE /api/teachers/{id} (soft delete). The
// backing user is left untouched.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.BadRequest(w, "invalid id")
		return
	}

	store := teacherstore.New(h.DB)
	if err := store.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.NotFound(w, "teacher not found")
			return
		}
		webapi.Internal(w, requestid.Logger(r, h.Log), "deleting teacher", err)
		return
	}

	webapi.OKMessage(w, "teacher deleted")
}

package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/teacherhub/internal/app/store/users"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleDelete serves DELETE /api/users/{id} (soft delete).
//
// Deleting a user does not cascade to any teacher record backed by it;
// the roster view nulls the user out instead.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.BadRequest(w, "invalid id")
		return
	}

	store := userstore.New(h.DB)
	if err := store.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.NotFound(w, "user not found")
			return
		}
		webapi.Internal(w, requestid.Logger(r, h.Log), "deleting user", err)
		return
	}

	webapi.OKMessage(w, "user deleted")
}

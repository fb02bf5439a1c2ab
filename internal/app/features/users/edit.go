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

// HandleUpdate serves PUT /api/users/{id}. Only the fields present in
// the payload change; email and identity uniqueness checks exclude the
// user itself.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webapi.BadRequest(w, "invalid id")
		return
	}

	var req updateRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.BadRequest(w, err.Error())
		return
	}

	upd := userstore.Update{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Identity:    req.Identity,
		Role:        req.Role,
	}
	if req.DOB != nil {
		dob, err := webapi.ParseDate(*req.DOB)
		if err != nil {
			webapi.BadRequest(w, "dob must be a valid date")
			return
		}
		upd.DOB = &dob
	}

	store := userstore.New(h.DB)
	u, err := store.Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			webapi.NotFound(w, "user not found")
		case errors.Is(err, userstore.ErrBadEmail),
			errors.Is(err, userstore.ErrBadRole),
			errors.Is(err, userstore.ErrDuplicateEmail),
			errors.Is(err, userstore.ErrDuplicateIdentity):
			webapi.BadRequest(w, err.Error())
		default:
			webapi.Internal(w, requestid.Logger(r, h.Log), "updating user", err)
		}
		return
	}

	webapi.JSON(w, http.StatusOK, webapi.Envelope{
		Success: true,
		Message: "user updated",
		Data:    u,
	})
}

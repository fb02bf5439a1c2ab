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

// HandleUpdate serves PUT /api/teacher-positions/{id}.
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

	store := positionstore.New(h.DB)
	p, err := store.Update(ctx, id, positionstore.Update{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			webapi.NotFound(w, "position not found")
		case errors.Is(err, positionstore.ErrDuplicateName):
			webapi.BadRequest(w, err.Error())
		default:
			webapi.Internal(w, requestid.Logger(r, h.Log), "updating position", err)
		}
		return
	}

	webapi.JSON(w, http.StatusOK, webapi.Envelope{
		Success: true,
		Message: "position updated",
		Data:    p,
	})
}

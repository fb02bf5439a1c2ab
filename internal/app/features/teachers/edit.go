package teachers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teacherhub/internal/app/store/queries/teacherroster"
	teacherstore "github.com/dalemusser/teacherhub/internal/app/store/teachers"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleUpdate serves PUT /api/teachers/{id}. The code and the backing
// user are immutable; position references are re-validated on change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	log := requestid.Logger(r, h.Log)

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

	upd := teacherstore.Update{IsActive: req.IsActive}

	if req.StartDate != nil {
		sd, err := webapi.ParseDate(*req.StartDate)
		if err != nil {
			webapi.BadRequest(w, "startDate must be a valid date")
			return
		}
		upd.StartDate = &sd
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			upd.ClearEndDate = true
		} else {
			ed, err := webapi.ParseDate(*req.EndDate)
			if err != nil {
				webapi.BadRequest(w, "endDate must be a valid date")
				return
			}
			upd.EndDate = &ed
		}
	}
	if req.TeacherPositionsID != nil {
		ids, problems, err := h.resolvePositionIDs(ctx, *req.TeacherPositionsID)
		if err != nil {
			webapi.Internal(w, log, "checking teacher positions", err)
			return
		}
		if len(problems) > 0 {
			webapi.BadRequest(w, "invalid input", problems...)
			return
		}
		upd.PositionIDs = ids
	}
	if req.Degrees != nil {
		degrees, problems := buildDegrees(*req.Degrees)
		if len(problems) > 0 {
			webapi.BadRequest(w, "invalid input", problems...)
			return
		}
		upd.Degrees = degrees
	}

	store := teacherstore.New(h.DB)
	updated, err := store.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webapi.NotFound(w, "teacher not found")
			return
		}
		webapi.Internal(w, log, "updating teacher", err)
		return
	}

	row, err := teacherroster.GetByID(ctx, h.DB, updated.ID)
	if err != nil {
		webapi.Internal(w, log, "reading back teacher", err)
		return
	}

	webapi.JSON(w, http.StatusOK, webapi.Envelope{
		Success: true,
		Message: "teacher updated",
		Data:    row,
	})
}

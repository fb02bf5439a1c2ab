package positions

import (
	"context"
	"errors"
	"net/http"

	positionstore "github.com/dalemusser/teacherhub/internal/app/store/positions"
	"github.com/dalemusser/teacherhub/internal/app/system/codegen"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
	"github.com/dalemusser/teacherhub/internal/domain/models"
)

// HandleCreate serves POST /api/teacher-positions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var req createRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.BadRequest(w, err.Error())
		return
	}

	if req.Name == "" {
		webapi.BadRequest(w, "invalid input", "name is required")
		return
	}

	store := positionstore.New(h.DB)

	code := req.Code
	if code == "" {
		count, err := store.Count(ctx)
		if err != nil {
			webapi.Internal(w, requestid.Logger(r, h.Log), "counting positions", err)
			return
		}
		code, err = codegen.Sequential(ctx, h.CodePrefix, codeWidth, count, store.CodeInUse)
		if err != nil {
			webapi.Internal(w, requestid.Logger(r, h.Log), "generating position code", err)
			return
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := store.Create(ctx, models.TeacherPosition{
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    isActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, positionstore.ErrDuplicateName),
			errors.Is(err, positionstore.ErrDuplicateCode):
			webapi.BadRequest(w, err.Error())
		default:
			webapi.Internal(w, requestid.Logger(r, h.Log), "creating position", err)
		}
		return
	}

	webapi.Created(w, "position created", created)
}

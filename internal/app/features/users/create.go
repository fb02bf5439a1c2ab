package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/teacherhub/internal/app/store/users"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
	"github.com/dalemusser/teacherhub/internal/domain/models"
)

// HandleCreate serves POST /api/users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.BadRequest(w, err.Error())
		return
	}

	var missing []string
	for _, f := range []struct{ name, val string }{
		{"name", req.Name},
		{"email", req.Email},
		{"phoneNumber", req.PhoneNumber},
		{"address", req.Address},
		{"identity", req.Identity},
		{"dob", req.DOB},
		{"role", req.Role},
	} {
		if f.val == "" {
			missing = append(missing, f.name+" is required")
		}
	}
	if len(missing) > 0 {
		webapi.BadRequest(w, "invalid input", missing...)
		return
	}

	dob, err := webapi.ParseDate(req.DOB)
	if err != nil {
		webapi.BadRequest(w, "dob must be a valid date")
		return
	}

	store := userstore.New(h.DB)
	created, err := store.Create(ctx, models.User{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Identity:    req.Identity,
		DOB:         dob,
		Role:        req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrBadEmail),
			errors.Is(err, userstore.ErrBadRole),
			errors.Is(err, userstore.ErrDuplicateEmail),
			errors.Is(err, userstore.ErrDuplicateIdentity):
			webapi.BadRequest(w, err.Error())
		default:
			webapi.Internal(w, requestid.Logger(r, h.Log), "creating user", err)
		}
		return
	}

	webapi.Created(w, "user created", created)
}

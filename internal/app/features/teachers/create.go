package teachers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/teacherhub/internal/app/store/queries/teacherroster"
	teacherstore "github.com/dalemusser/teacherhub/internal/app/store/teachers"
	userstore "github.com/dalemusser/teacherhub/internal/app/store/users"
	"github.com/dalemusser/teacherhub/internal/app/system/codegen"
	"github.com/dalemusser/teacherhub/internal/app/system/requestid"
	"github.com/dalemusser/teacherhub/internal/app/system/timeouts"
	"github.com/dalemusser/teacherhub/internal/app/system/webapi"
	"github.com/dalemusser/teacherhub/internal/domain/models"
)

// HandleCreate serves POST /api/teachers. The request names either an
// existing user (userId) or an inline newUser. The workflow resolves the
// person first, then the position references, then mints a code, writes,
// and answers with the joined record. A user problem answers before a
// position problem when both are present.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	log := requestid.Logger(r, h.Log)

	var req createRequest
	if err := webapi.Decode(r, &req); err != nil {
		webapi.BadRequest(w, err.Error())
		return
	}

	if (req.UserID == "") == (req.NewUser == nil) {
		webapi.BadRequest(w, "exactly one of userId or newUser is required")
		return
	}
	if req.StartDate == "" {
		webapi.BadRequest(w, "startDate is required")
		return
	}
	startDate, err := webapi.ParseDate(req.StartDate)
	if err != nil {
		webapi.BadRequest(w, "startDate must be a valid date")
		return
	}
	var endDate *time.Time
	if req.EndDate != "" {
		ed, err := webapi.ParseDate(req.EndDate)
		if err != nil {
			webapi.BadRequest(w, "endDate must be a valid date")
			return
		}
		if ed.Before(startDate) {
			webapi.BadRequest(w, "endDate must not be before startDate")
			return
		}
		endDate = &ed
	}

	degrees, problems := buildDegrees(req.Degrees)
	if len(problems) > 0 {
		webapi.BadRequest(w, "invalid input", problems...)
		return
	}

	userStore := userstore.New(h.DB)
	teacherStore := teacherstore.New(h.DB)

	// Resolve the person before anything else.
	var (
		existingUserID primitive.ObjectID
		newUser        *models.User
	)
	if req.NewUser != nil {
		u, problems := buildNewUser(*req.NewUser)
		if len(problems) > 0 {
			webapi.BadRequest(w, "invalid input", problems...)
			return
		}
		newUser = &u
	} else {
		uid, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			webapi.BadRequest(w, "userId is not a valid id")
			return
		}
		// The user must be live and hold the TEACHER role.
		if _, err := userStore.GetTeacherCandidate(ctx, uid); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				webapi.NotFound(w, "user not found or not eligible")
				return
			}
			webapi.Internal(w, log, "loading user", err)
			return
		}
		taken, err := teacherStore.ExistsForUser(ctx, uid)
		if err != nil {
			webapi.Internal(w, log, "checking teacher record", err)
			return
		}
		if taken {
			webapi.BadRequest(w, teacherstore.ErrAlreadyTeacher.Error())
			return
		}
		existingUserID = uid
	}

	positionIDs, problems, err := h.resolvePositionIDs(ctx, req.TeacherPositionsID)
	if err != nil {
		webapi.Internal(w, log, "checking teacher positions", err)
		return
	}
	if len(problems) > 0 {
		webapi.BadRequest(w, "invalid input", problems...)
		return
	}

	code, err := h.generateCode(ctx, teacherStore)
	if err != nil {
		webapi.Internal(w, log, "generating teacher code", err)
		return
	}

	teacher := models.Teacher{
		Code:        code,
		IsActive:    true,
		StartDate:   startDate,
		EndDate:     endDate,
		PositionIDs: positionIDs,
		Degrees:     degrees,
	}

	var created models.Teacher
	if newUser != nil {
		created, err = h.createPaired(ctx, userStore, teacherStore, *newUser, teacher)
	} else {
		teacher.UserID = existingUserID
		created, err = teacherStore.Create(ctx, teacher)
	}
	if err != nil {
		switch {
		case errors.Is(err, teacherstore.ErrDuplicateCode),
			errors.Is(err, teacherstore.ErrAlreadyTeacher),
			errors.Is(err, userstore.ErrBadEmail),
			errors.Is(err, userstore.ErrDuplicateEmail),
			errors.Is(err, userstore.ErrDuplicateIdentity):
			webapi.BadRequest(w, err.Error())
		default:
			webapi.Internal(w, log, "creating teacher", err)
		}
		return
	}

	row, err := teacherroster.GetByID(ctx, h.DB, created.ID)
	if err != nil {
		webapi.Internal(w, log, "reading back teacher", err)
		return
	}
	webapi.Created(w, "teacher created", row)
}

// buildNewUser validates the inline user payload. The role is forced to
// TEACHER regardless of input.
func buildNewUser(nu newUserPayload) (models.User, []string) {
	var problems []string
	for _, f := range []struct{ name, val string }{
		{"newUser.name", nu.Name},
		{"newUser.email", nu.Email},
		{"newUser.phoneNumber", nu.PhoneNumber},
		{"newUser.address", nu.Address},
		{"newUser.identity", nu.Identity},
		{"newUser.dob", nu.DOB},
	} {
		if f.val == "" {
			problems = append(problems, f.name+" is required")
		}
	}

	var dob time.Time
	if nu.DOB != "" {
		var err error
		dob, err = webapi.ParseDate(nu.DOB)
		if err != nil {
			problems = append(problems, "newUser.dob must be a valid date")
		}
	}
	if len(problems) > 0 {
		return models.User{}, problems
	}

	return models.User{
		Name:        nu.Name,
		Email:       nu.Email,
		PhoneNumber: nu.PhoneNumber,
		Address:     nu.Address,
		Identity:    nu.Identity,
		DOB:         dob,
		Role:        models.RoleTeacher,
	}, nil
}

// generateCode mints an unused teacher code under the configured policy.
func (h *Handler) generateCode(ctx context.Context, s *teacherstore.Store) (string, error) {
	if h.CodePolicy == codegen.PolicySequential {
		count, err := s.Count(ctx)
		if err != nil {
			return "", err
		}
		return codegen.Sequential(ctx, codePrefix, codeWidth, count, s.CodeInUse)
	}
	return codegen.Random(ctx, s.CodeInUse)
}

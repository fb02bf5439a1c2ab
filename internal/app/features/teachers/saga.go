package teachers

import (
	"context"

	"go.uber.org/zap"

	teacherstore "github.com/dalemusser/teacherhub/internal/app/store/teachers"
	userstore "github.com/dalemusser/teacherhub/internal/app/store/users"
	"github.com/dalemusser/teacherhub/internal/app/system/txn"
	"github.com/dalemusser/teacherhub/internal/domain/models"
)

// createPaired inserts a new user and its teacher record as one logical
// operation. On replica sets it runs inside a session transaction; on
// standalone deployments it falls back to sequential writes and hard
// deletes the user again if the teacher insert fails.
func (h *Handler) createPaired(ctx context.Context, userStore *userstore.Store, teacherStore *teacherstore.Store, u models.User, t models.Teacher) (models.Teacher, error) {
	var created models.Teacher
	err := txn.Run(ctx, h.Client, func(sc context.Context) error {
		nu, err := userStore.Create(sc, u)
		if err != nil {
			return err
		}
		t.UserID = nu.ID
		created, err = teacherStore.Create(sc, t)
		return err
	})
	if err == nil {
		return created, nil
	}
	if !txn.IsNotSupported(err) {
		return models.Teacher{}, err
	}

	nu, err := userStore.Create(ctx, u)
	if err != nil {
		return models.Teacher{}, err
	}
	t.UserID = nu.ID
	created, err = teacherStore.Create(ctx, t)
	if err != nil {
		if derr := userStore.HardDelete(ctx, nu.ID); derr != nil {
			h.Log.Error("compensating user delete failed",
				zap.String("user_id", nu.ID.Hex()),
				zap.Error(derr))
		}
		return models.Teacher{}, err
	}
	return created, nil
}

package teachers

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	positionstore "github.com/dalemusser/teacherhub/internal/app/store/positions"
)

// resolvePositionIDs parses, de-duplicates, and existence-checks the
// requested position ids. problems carries client-side issues (bad hex,
// unknown or deleted positions); err is reserved for storage failures.
func (h *Handler) resolvePositionIDs(ctx context.Context, raw []string) (ids []primitive.ObjectID, problems []string, err error) {
	seen := make(map[primitive.ObjectID]bool, len(raw))
	ids = make([]primitive.ObjectID, 0, len(raw))
	for i, s := range raw {
		oid, perr := primitive.ObjectIDFromHex(s)
		if perr != nil {
			problems = append(problems, fmt.Sprintf("teacherPositionsId[%d] is not a valid id", i))
			continue
		}
		if seen[oid] {
			continue
		}
		seen[oid] = true
		ids = append(ids, oid)
	}
	if len(problems) > 0 {
		return nil, problems, nil
	}
	if len(ids) == 0 {
		return ids, nil, nil
	}

	n, err := positionstore.New(h.DB).CountMatching(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if n != int64(len(ids)) {
		return nil, []string{"one or more teacher positions do not exist"}, nil
	}
	return ids, nil, nil
}

// Package teacherstore wraps the teachers collection.
//
// All reads are scoped to non-deleted documents. The collection carries
// partial unique indexes on code and user_id (see system/indexes); this
// store maps their rejections to named errors so the write path can
// surface them as validation failures.
package teacherstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/teacherhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teachers")}
}

var (
	// ErrDuplicateCode is returned when a live teacher already holds the code.
	ErrDuplicateCode = errors.New("a teacher with this code already exists")
	// ErrAlreadyTeacher is returned when the user already backs a live teacher.
	ErrAlreadyTeacher = errors.New("user is already a teacher")
)

// GetByID loads a live teacher by ObjectID. Returns mongo.ErrNoDocuments
// when absent or soft-deleted.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Teacher, error) {
	var t models.Teacher
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ExistsForUser reports whether a live teacher record backs the user.
func (s *Store) ExistsForUser(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "is_deleted": false}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// CodeInUse reports whether a live teacher already holds code. It
// satisfies codegen.Checker.
func (s *Store) CodeInUse(ctx context.Context, code string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"code": code, "is_deleted": false}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// Count returns the number of live teachers. The sequential code policy
// derives its counter from this.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"is_deleted": false})
}

// Create inserts a new teacher. The caller supplies a validated record
// with a generated code; Create stamps id, defaults, and timestamps.
// Duplicate-key rejections map to ErrDuplicateCode / ErrAlreadyTeacher
// depending on which index fired.
func (s *Store) Create(ctx context.Context, t models.Teacher) (models.Teacher, error) {
	t.ID = primitive.NewObjectID()
	t.IsDeleted = false
	if t.PositionIDs == nil {
		t.PositionIDs = []primitive.ObjectID{}
	}
	if t.Degrees == nil {
		t.Degrees = []models.Degree{}
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			if strings.Contains(err.Error(), "user_id") {
				return models.Teacher{}, ErrAlreadyTeacher
			}
			return models.Teacher{}, ErrDuplicateCode
		}
		return models.Teacher{}, err
	}
	return t, nil
}

// Update holds the mutable teacher fields. Nil pointers leave the stored
// value untouched; ClearEndDate unsets end_date.
type Update struct {
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
	PositionIDs  []primitive.ObjectID
	Degrees      []models.Degree
	IsActive     *bool
}

// Update applies a partial update to a live teacher and returns the
// updated document. Returns mongo.ErrNoDocuments when absent or deleted.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Teacher, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if upd.StartDate != nil {
		set["start_date"] = *upd.StartDate
	}
	if upd.ClearEndDate {
		unset["end_date"] = ""
	} else if upd.EndDate != nil {
		set["end_date"] = *upd.EndDate
	}
	if upd.PositionIDs != nil {
		set["teacher_positions_id"] = upd.PositionIDs
	}
	if upd.Degrees != nil {
		set["degrees"] = upd.Degrees
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var t models.Teacher
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": false},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SoftDelete marks a live teacher deleted. Returns mongo.ErrNoDocuments
// when absent or already deleted.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	).Err()
}

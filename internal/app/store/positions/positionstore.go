// Package positionstore wraps the teacher_positions collection.
//
// All reads are scoped to non-deleted documents. Position names are
// unique case-insensitively among live positions via the folded name_ci
// field; codes are unique among live positions.
package positionstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/teacherhub/internal/app/system/normalize"
	"github.com/dalemusser/teacherhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teacher_positions")}
}

var (
	// ErrDuplicateName is returned when a live position already holds the name.
	ErrDuplicateName = errors.New("a position with this name already exists")
	// ErrDuplicateCode is returned when a live position already holds the code.
	ErrDuplicateCode = errors.New("a position with this code already exists")
)

// GetByID loads a live position by ObjectID. Returns mongo.ErrNoDocuments
// when absent or soft-deleted.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeacherPosition, error) {
	var p models.TeacherPosition
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of live positions sorted by creation time
// descending, plus the total count.
func (s *Store) List(ctx context.Context, page, limit int) ([]models.TeacherPosition, int64, error) {
	filter := bson.M{"is_deleted": false}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	positions := []models.TeacherPosition{}
	if err := cur.All(ctx, &positions); err != nil {
		return nil, 0, err
	}
	return positions, total, nil
}

// CountMatching returns how many live positions exist among the given
// ids. The caller deduplicates ids first; equality with len(ids) means
// every reference resolves.
func (s *Store) CountMatching(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.c.CountDocuments(ctx, bson.M{
		"_id":        bson.M{"$in": ids},
		"is_deleted": false,
	})
}

// CodeInUse reports whether a live position already holds code. It
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

// Count returns the number of live positions, feeding the sequential
// code generator.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"is_deleted": false})
}

// Create inserts a new position after normalizing fields. Name and code
// clashes against live positions are rejected with named errors; the
// query is a logical OR so either collision is caught in one probe.
func (s *Store) Create(ctx context.Context, p models.TeacherPosition) (models.TeacherPosition, error) {
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	p.Code = normalize.Code(p.Code)
	p.IsDeleted = false

	var existing models.TeacherPosition
	err := s.c.FindOne(ctx, bson.M{
		"$or":        bson.A{bson.M{"name_ci": p.NameCI}, bson.M{"code": p.Code}},
		"is_deleted": false,
	}).Decode(&existing)
	switch {
	case err == nil:
		if existing.NameCI == p.NameCI {
			return models.TeacherPosition{}, ErrDuplicateName
		}
		return models.TeacherPosition{}, ErrDuplicateCode
	case !errors.Is(err, mongo.ErrNoDocuments):
		return models.TeacherPosition{}, err
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			if strings.Contains(err.Error(), "name_ci") {
				return models.TeacherPosition{}, ErrDuplicateName
			}
			return models.TeacherPosition{}, ErrDuplicateCode
		}
		return models.TeacherPosition{}, err
	}
	return p, nil
}

// Update holds the mutable position fields.
type Update struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Update applies a partial update to a live position and returns the
// updated document. A name change is checked against other live
// positions. Returns mongo.ErrNoDocuments when absent or deleted.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.TeacherPosition, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		nameCI := text.Fold(name)
		err := s.c.FindOne(ctx, bson.M{
			"name_ci":    nameCI,
			"_id":        bson.M{"$ne": id},
			"is_deleted": false,
		}).Err()
		if err == nil {
			return nil, ErrDuplicateName
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		set["name"] = name
		set["name_ci"] = nameCI
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var p models.TeacherPosition
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &p, nil
}

// SoftDelete marks a live position deleted. Returns mongo.ErrNoDocuments
// when absent or already deleted. Teachers referencing the position keep
// their reference; roster reads null it out.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	).Err()
}

// Package userstore wraps the users collection.
//
// Every read issued here carries the is_deleted filter, so callers get
// the soft-delete scoping by construction rather than by convention.
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/teacherhub/internal/app/system/normalize"
	"github.com/dalemusser/teacherhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when a live user already holds the email.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrDuplicateIdentity is returned when a live user already holds the identity number.
	ErrDuplicateIdentity = errors.New("a user with this identity already exists")
	// ErrBadEmail is returned when the email fails format validation.
	ErrBadEmail = errors.New("email is not valid")
	// ErrBadRole is returned when role is not STUDENT, TEACHER, or ADMIN.
	ErrBadRole = errors.New(`role must be "STUDENT"|"TEACHER"|"ADMIN"`)
)

// GetByID loads a live user by ObjectID. Returns mongo.ErrNoDocuments
// when the user is absent or soft-deleted.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetTeacherCandidate loads a live user by ObjectID, requiring role
// TEACHER. Returns mongo.ErrNoDocuments when the user is absent,
// soft-deleted, or holds a different role.
func (s *Store) GetTeacherCandidate(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	filter := bson.M{"_id": id, "role": models.RoleTeacher, "is_deleted": false}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns one page of live users sorted by creation time descending,
// optionally filtered by role, plus the total matching count.
func (s *Store) List(ctx context.Context, page, limit int, role string) ([]models.User, int64, error) {
	filter := bson.M{"is_deleted": false}
	if role != "" {
		filter["role"] = role
	}

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

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create inserts a new user after normalizing and validating fields.
// Email and identity must be unique among live users; the pre-checks
// here give named errors, and the partial unique indexes catch the race
// two concurrent creates can slip through.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	u.PhoneNumber = normalize.Phone(u.PhoneNumber)
	u.Identity = normalize.Identity(u.Identity)
	u.IsDeleted = false

	if !validate.SimpleEmailValid(u.Email) {
		return models.User{}, ErrBadEmail
	}
	if !models.ValidRole(u.Role) {
		return models.User{}, ErrBadRole
	}

	if taken, err := s.emailInUse(ctx, u.Email, nil); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, ErrDuplicateEmail
	}
	if taken, err := s.identityInUse(ctx, u.Identity, nil); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, ErrDuplicateIdentity
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, dupError(err)
		}
		return models.User{}, err
	}
	return u, nil
}

// Update holds the mutable user fields. Nil pointers leave the stored
// value untouched.
type Update struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Address     *string
	Identity    *string
	DOB         *time.Time
	Role        *string
}

// Update applies a partial update to a live user and returns the updated
// document. Email/identity uniqueness checks exclude the user itself.
// Returns mongo.ErrNoDocuments when the user is absent or soft-deleted.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}

	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.Email != nil {
		email := normalize.Email(*upd.Email)
		if !validate.SimpleEmailValid(email) {
			return nil, ErrBadEmail
		}
		if taken, err := s.emailInUse(ctx, email, &id); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrDuplicateEmail
		}
		set["email"] = email
	}
	if upd.PhoneNumber != nil {
		set["phone_number"] = normalize.Phone(*upd.PhoneNumber)
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Identity != nil {
		identity := normalize.Identity(*upd.Identity)
		if taken, err := s.identityInUse(ctx, identity, &id); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrDuplicateIdentity
		}
		set["identity"] = identity
	}
	if upd.DOB != nil {
		set["dob"] = *upd.DOB
	}
	if upd.Role != nil {
		if !models.ValidRole(*upd.Role) {
			return nil, ErrBadRole
		}
		set["role"] = *upd.Role
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, dupError(err)
		}
		return nil, err
	}
	return &u, nil
}

// SoftDelete marks a live user deleted. Returns mongo.ErrNoDocuments
// when the user is absent or already deleted. The document itself stays
// in the collection.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	return s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	).Err()
}

// HardDelete physically removes a user document. It exists solely as the
// compensating action for the paired create-user-then-teacher workflow;
// nothing else in the application removes documents.
func (s *Store) HardDelete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) emailInUse(ctx context.Context, email string, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"email": email, "is_deleted": false}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	return s.exists(ctx, filter)
}

func (s *Store) identityInUse(ctx context.Context, identity string, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"identity": identity, "is_deleted": false}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	return s.exists(ctx, filter)
}

func (s *Store) exists(ctx context.Context, filter bson.M) (bool, error) {
	err := s.c.FindOne(ctx, filter).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// dupError maps a duplicate-key write error to the sentinel for the
// index that rejected it.
func dupError(err error) error {
	if strings.Contains(err.Error(), "identity") {
		return ErrDuplicateIdentity
	}
	return ErrDuplicateEmail
}

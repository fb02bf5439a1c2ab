package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/teacherhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
	n  int
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a test user with the given role. Email and identity
// are derived from name so repeated calls stay unique within a test.
func (f *Fixtures) CreateUser(ctx context.Context, name, role string) models.User {
	f.t.Helper()
	f.n++

	now := time.Now().UTC()
	user := models.User{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Email:       fmt.Sprintf("fixture%d@test.com", f.n),
		PhoneNumber: "555 0100",
		Address:     "1 Test Street",
		Identity:    fmt.Sprintf("ID-%06d", f.n),
		DOB:         time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		Role:        role,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTeacherUser inserts a test user with the TEACHER role.
func (f *Fixtures) CreateTeacherUser(ctx context.Context, name string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, models.RoleTeacher)
}

// CreateTeacher inserts a teacher record backed by userID with the given
// code and position references.
func (f *Fixtures) CreateTeacher(ctx context.Context, userID primitive.ObjectID, code string, positionIDs ...primitive.ObjectID) models.Teacher {
	f.t.Helper()

	if positionIDs == nil {
		positionIDs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	teacher := models.Teacher{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Code:        code,
		IsActive:    true,
		IsDeleted:   false,
		StartDate:   time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC),
		PositionIDs: positionIDs,
		Degrees:     []models.Degree{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("teachers").InsertOne(ctx, teacher); err != nil {
		f.t.Fatalf("failed to create test teacher: %v", err)
	}
	return teacher
}

// CreatePosition inserts a teacher position with the given code and name.
func (f *Fixtures) CreatePosition(ctx context.Context, code, name string) models.TeacherPosition {
	f.t.Helper()

	now := time.Now().UTC()
	pos := models.TeacherPosition{
		ID:          primitive.NewObjectID(),
		Code:        code,
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test position description",
		IsActive:    true,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("teacher_positions").InsertOne(ctx, pos); err != nil {
		f.t.Fatalf("failed to create test position: %v", err)
	}
	return pos
}

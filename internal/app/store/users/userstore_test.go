package userstore_test

import (
	"errors"
	"testing"
	"time"

	userstore "github.com/dalemusser/teacherhub/internal/app/store/users"
	"github.com/dalemusser/teacherhub/internal/domain/models"
	"github.com/dalemusser/teacherhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func validUser() models.User {
	return models.User{
		Name:        "Jane Doe",
		Email:       "Jane.Doe@Example.COM",
		PhoneNumber: "555  0101",
		Address:     "2 Test Street",
		Identity:    "ID-100001",
		DOB:         time.Date(1985, 6, 1, 0, 0, 0, 0, time.UTC),
		Role:        models.RoleTeacher,
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "jane.doe@example.com" {
		t.Errorf("expected lowercased email, got %q", created.Email)
	}
	if created.PhoneNumber != "555 0101" {
		t.Errorf("expected collapsed phone number, got %q", created.PhoneNumber)
	}
	if created.IsDeleted {
		t.Error("expected IsDeleted false")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_BadEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := validUser()
	u.Email = "not-an-email"
	if _, err := store.Create(ctx, u); !errors.Is(err, userstore.ErrBadEmail) {
		t.Fatalf("expected ErrBadEmail, got %v", err)
	}
}

func TestStore_Create_BadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := validUser()
	u.Role = "PRINCIPAL"
	if _, err := store.Create(ctx, u); !errors.Is(err, userstore.ErrBadRole) {
		t.Fatalf("expected ErrBadRole, got %v", err)
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, validUser()); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same email with different case, different identity.
	u := validUser()
	u.Email = "JANE.DOE@example.com"
	u.Identity = "ID-100002"
	if _, err := store.Create(ctx, u); !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Create_DuplicateIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, validUser()); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	u := validUser()
	u.Email = "other@example.com"
	if _, err := store.Create(ctx, u); !errors.Is(err, userstore.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestStore_Create_ReusesSoftDeletedEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, validUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.SoftDelete(ctx, first.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// A deleted user no longer blocks the email or identity.
	if _, err := store.Create(ctx, validUser()); err != nil {
		t.Fatalf("Create after SoftDelete failed: %v", err)
	}
}

func TestStore_GetByID_ExcludesSoftDeleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := store.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if err := store.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments after soft delete, got %v", err)
	}

	// The document itself must remain in the collection.
	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"_id": created.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected document to survive soft delete, count=%d", n)
	}
}

func TestStore_SoftDelete_Twice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("first SoftDelete failed: %v", err)
	}
	if err := store.SoftDelete(ctx, created.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments on second SoftDelete, got %v", err)
	}
}

func TestStore_Update_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	name := "  Janet Doe  "
	updated, err := store.Update(ctx, created.ID, userstore.Update{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Name != "Janet Doe" {
		t.Errorf("expected trimmed name, got %q", updated.Name)
	}
	if updated.Email != created.Email {
		t.Errorf("expected email untouched, got %q", updated.Email)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestStore_Update_DuplicateEmailExcludesSelf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	other := validUser()
	other.Email = "other@example.com"
	other.Identity = "ID-100002"
	if _, err := store.Create(ctx, other); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	// Re-asserting the user's own email is not a conflict.
	own := created.Email
	if _, err := store.Update(ctx, created.ID, userstore.Update{Email: &own}); err != nil {
		t.Fatalf("Update with own email failed: %v", err)
	}

	// Taking the other user's email is.
	taken := "other@example.com"
	if _, err := store.Update(ctx, created.ID, userstore.Update{Email: &taken}); !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_List_RoleFilterAndPaging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 3; i++ {
		fixtures.CreateUser(ctx, "Teacher", models.RoleTeacher)
	}
	fixtures.CreateUser(ctx, "Student", models.RoleStudent)
	deleted := fixtures.CreateUser(ctx, "Gone", models.RoleTeacher)
	if err := store.SoftDelete(ctx, deleted.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	list, total, err := store.List(ctx, 1, 10, models.RoleTeacher)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3", total)
	}
	if len(list) != 3 {
		t.Errorf("len: got %d, want 3", len(list))
	}
	for _, u := range list {
		if u.Role != models.RoleTeacher {
			t.Errorf("unexpected role %q in filtered list", u.Role)
		}
	}

	// Second page of a 2-per-page listing.
	page2, total, err := store.List(ctx, 2, 2, models.RoleTeacher)
	if err != nil {
		t.Fatalf("List page 2 failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3", total)
	}
	if len(page2) != 1 {
		t.Errorf("page 2 len: got %d, want 1", len(page2))
	}
}

func TestStore_HardDelete_RemovesDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, validUser())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.HardDelete(ctx, created.ID); err != nil {
		t.Fatalf("HardDelete failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"_id": created.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected document removed, count=%d", n)
	}
}

package positionstore_test

import (
	"errors"
	"testing"

	positionstore "github.com/dalemusser/teacherhub/internal/app/store/positions"
	"github.com/dalemusser/teacherhub/internal/domain/models"
	"github.com/dalemusser/teacherhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := positionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.TeacherPosition{
		Code:        "pos001",
		Name:        "  Head of Department ",
		Description: "Leads a department",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Code != "POS001" {
		t.Errorf("expected uppercased code, got %q", created.Code)
	}
	if created.Name != "Head of Department" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
}

func TestStore_Create_DuplicateNameCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := positionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.TeacherPosition{Code: "POS001", Name: "Head of Department"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.TeacherPosition{Code: "POS002", Name: "HEAD OF DEPARTMENT"})
	if !errors.Is(err, positionstore.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestStore_Create_DuplicateCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := positionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.TeacherPosition{Code: "POS001", Name: "Head of Department"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.TeacherPosition{Code: "POS001", Name: "Homeroom Teacher"})
	if !errors.Is(err, positionstore.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestStore_Create_ReusesSoftDeletedName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := positionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, models.TeacherPosition{Code: "POS001", Name: "Head of Department"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.SoftDelete(ctx, first.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	if _, err := store.Create(ctx, models.TeacherPosition{Code: "POS001", Name: "Head of Department"}); err != nil {
		t.Fatalf("Create after SoftDelete failed: %v", err)
	}
}

func TestStore_Update_NameConflictExcludesSelf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := positionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.TeacherPosition{Code: "POS001", Name: "Head of Department"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.TeacherPosition{Code: "POS002", Name: "Homeroom Teacher"}); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	// Renaming to its own name (different case) is allowed.
	own := "HEAD OF DEPARTMENT"
	updated, err := store.Update(ctx, created.ID, positionstore.Update{Name: &own})
	if err != nil {
		t.Fatalf("Update with own name failed: %v", err)
	}
	if updated.Name != "HEAD OF DEPARTMENT" {
		t.Errorf("expected renamed position, got %q", updated.Name)
	}

	// Taking another live position's name is rejected.
	taken := "homeroom teacher"
	if _, err := store.Update(ctx, created.ID, positionstore.Update{Name: &taken}); !errors.Is(err, positionstore.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestStore_CountMatching(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := positionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p1 := fixtures.CreatePosition(ctx, "POS001", "Head of Department")
	p2 := fixtures.CreatePosition(ctx, "POS002", "Homeroom Teacher")

	n, err := store.CountMatching(ctx, []primitive.ObjectID{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("CountMatching failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountMatching: got %d, want 2", n)
	}

	// A soft-deleted position no longer counts.
	if err := store.SoftDelete(ctx, p2.ID); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	n, err = store.CountMatching(ctx, []primitive.ObjectID{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("CountMatching failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountMatching after delete: got %d, want 1", n)
	}

	// Unknown ids do not resolve.
	n, err = store.CountMatching(ctx, []primitive.ObjectID{primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("CountMatching failed: %v", err)
	}
	if n != 0 {
		t.Errorf("CountMatching unknown id: got %d, want 0", n)
	}
}

func TestStore_List_Paging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := positionstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 5; i++ {
		fixtures.CreatePosition(ctx, "POS00"+string(rune('1'+i)), "Position "+string(rune('A'+i)))
	}

	page1, total, err := store.List(ctx, 1, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total: got %d, want 5", total)
	}
	if len(page1) != 2 {
		t.Errorf("page 1 len: got %d, want 2", len(page1))
	}

	page3, _, err := store.List(ctx, 3, 2)
	if err != nil {
		t.Fatalf("List page 3 failed: %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("page 3 len: got %d, want 1", len(page3))
	}

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments for unknown id, got %v", err)
	}
}

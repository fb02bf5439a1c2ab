package positions_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	positionsfeature "github.com/dalemusser/teacherhub/internal/app/features/positions"
	"github.com/dalemusser/teacherhub/internal/domain/models"
	"github.com/dalemusser/teacherhub/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := positionsfeature.NewHandler(db, "POS", zap.NewNop())
	return positionsfeature.Routes(h), testutil.NewFixtures(t, db)
}

func createPosition(t *testing.T, r http.Handler, payload map[string]any) models.TeacherPosition {
	t.Helper()

	req := testutil.NewJSONRequest(t, "POST", "/", payload)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create position: got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var p models.TeacherPosition
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &p)
	return p
}

func TestHandleCreate_GeneratesSequentialCodes(t *testing.T) {
	r, _ := newRouter(t)

	p1 := createPosition(t, r, map[string]any{"name": "Head of Department"})
	if p1.Code != "POS001" {
		t.Errorf("first code: got %q, want POS001", p1.Code)
	}

	p2 := createPosition(t, r, map[string]any{"name": "Homeroom Teacher"})
	if p2.Code != "POS002" {
		t.Errorf("second code: got %q, want POS002", p2.Code)
	}
}

func TestHandleCreate_ExplicitCodeUppercased(t *testing.T) {
	r, _ := newRouter(t)

	p := createPosition(t, r, map[string]any{"name": "Head of Department", "code": "lead01"})
	if p.Code != "LEAD01" {
		t.Errorf("code: got %q, want LEAD01", p.Code)
	}
	if !p.IsActive {
		t.Error("expected isActive to default to true")
	}
}

func TestHandleCreate_DuplicateNameDifferentCase(t *testing.T) {
	r, _ := newRouter(t)

	createPosition(t, r, map[string]any{"name": "Head of Department"})

	req := testutil.NewJSONRequest(t, "POST", "/", map[string]any{"name": "HEAD OF DEPARTMENT"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Success {
		t.Error("expected success=false")
	}
}

func TestHandleCreate_NameRequired(t *testing.T) {
	r, _ := newRouter(t)

	req := testutil.NewJSONRequest(t, "POST", "/", map[string]any{"description": "no name"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleUpdate_Rename(t *testing.T) {
	r, _ := newRouter(t)

	p := createPosition(t, r, map[string]any{"name": "Head of Department"})

	req := testutil.NewJSONRequest(t, "PUT", "/"+p.ID.Hex(), map[string]any{"name": "Deputy Head"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var updated models.TeacherPosition
	testutil.DecodeData(t, testutil.DecodeEnvelope(t, rec), &updated)
	if updated.Name != "Deputy Head" {
		t.Errorf("name: got %q", updated.Name)
	}
	if updated.Code != p.Code {
		t.Errorf("code changed unexpectedly: got %q", updated.Code)
	}
}

func TestHandleDelete_ThenGet(t *testing.T) {
	r, _ := newRouter(t)

	p := createPosition(t, r, map[string]any{"name": "Head of Department"})

	req := httptest.NewRequest("DELETE", "/"+p.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/"+p.ID.Hex(), nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleList_Pagination(t *testing.T) {
	r, fixtures := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreatePosition(ctx, "POS001", "Head of Department")
	fixtures.CreatePosition(ctx, "POS002", "Homeroom Teacher")
	fixtures.CreatePosition(ctx, "POS003", "Lab Supervisor")

	req := httptest.NewRequest("GET", "/?page=2&limit=2", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Pagination == nil {
		t.Fatal("expected pagination block")
	}
	if env.Pagination.TotalItems != 3 || env.Pagination.TotalPages != 2 {
		t.Errorf("pagination: got %+v", env.Pagination)
	}

	var list []models.TeacherPosition
	testutil.DecodeData(t, env, &list)
	if len(list) != 1 {
		t.Errorf("page 2 size: got %d, want 1", len(list))
	}
}

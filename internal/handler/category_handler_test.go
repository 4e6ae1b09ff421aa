package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/service"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func newCategoryHandlerForTest() (*CategoryHandler, *testutil.MockCategoryRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	equipmentRepo := testutil.NewMockEquipmentRepository()
	return NewCategoryHandler(service.NewCategoryService(categoryRepo, equipmentRepo)), categoryRepo
}

func TestCategoryHandler_CreateCategory_ReturnsCreated(t *testing.T) {
	e := echo.New()
	h, _ := newCategoryHandlerForTest()

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Cameras"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateCategory(c); err != nil {
		t.Fatalf("CreateCategory returned an error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	var resp CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.ShowInPrintOverview {
		t.Error("expected a new category to default ShowInPrintOverview to true")
	}
}

func TestCategoryHandler_CreateCategory_RendersDuplicateNameAsConflict(t *testing.T) {
	e := echo.New()
	h, repo := newCategoryHandlerForTest()
	if _, err := repo.Create(&domain.Category{Name: "Cameras"}); err != nil {
		t.Fatalf("seeding category failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Cameras"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateCategory(c); err != nil {
		t.Fatalf("CreateCategory returned an error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for a duplicate name, got %d", rec.Code)
	}
}

func TestCategoryHandler_UpdateCategory_RendersCycleAsValidationError(t *testing.T) {
	e := echo.New()
	h, repo := newCategoryHandlerForTest()
	parent, _ := repo.Create(&domain.Category{Name: "Parent"})
	child, _ := repo.Create(&domain.Category{Name: "Child", ParentID: &parent.ID})

	body := `{"parentId":` + strconv.Itoa(int(child.ID)) + `}`
	req := httptest.NewRequest(http.MethodPut, "/categories/"+strconv.Itoa(int(parent.ID)), strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(parent.ID)))

	if err := h.UpdateCategory(c); err != nil {
		t.Fatalf("UpdateCategory returned an error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a parent-cycle, got %d", rec.Code)
	}
}

func TestCategoryHandler_DeleteCategory_RefusesWithSubcategories(t *testing.T) {
	e := echo.New()
	h, repo := newCategoryHandlerForTest()
	parent, _ := repo.Create(&domain.Category{Name: "Parent"})
	if _, err := repo.Create(&domain.Category{Name: "Child", ParentID: &parent.ID}); err != nil {
		t.Fatalf("seeding child failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/categories/"+strconv.Itoa(int(parent.ID)), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(parent.ID)))

	if err := h.DeleteCategory(c); err != nil {
		t.Fatalf("DeleteCategory returned an error: %v", err)
	}
	if rec.Code == http.StatusNoContent {
		t.Fatal("expected deletion to be refused while subcategories exist")
	}
}

func TestCategoryHandler_GetCategory_RejectsNonNumericID(t *testing.T) {
	e := echo.New()
	h, _ := newCategoryHandlerForTest()

	req := httptest.NewRequest(http.MethodGet, "/categories/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.GetCategory(c); err != nil {
		t.Fatalf("GetCategory returned an error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a non-numeric id, got %d", rec.Code)
	}
}

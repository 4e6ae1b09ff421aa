package service

import (
	"testing"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func newCategoryServiceForTest() (*CategoryService, *testutil.MockCategoryRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	equipmentRepo := testutil.NewMockEquipmentRepository()
	return NewCategoryService(categoryRepo, equipmentRepo), categoryRepo
}

func TestCreateCategory_RejectsDuplicateName(t *testing.T) {
	svc, repo := newCategoryServiceForTest()

	if _, err := repo.Create(&domain.Category{Name: "Cameras"}); err != nil {
		t.Fatalf("seeding category failed: %v", err)
	}

	_, err := svc.CreateCategory(CreateCategoryInput{Name: "Cameras"})
	if err == nil {
		t.Fatal("expected a conflict error for a duplicate category name")
	}
	domainErr, ok := domain.AsDomainError(err)
	if !ok || domainErr.Kind != domain.KindConflict {
		t.Fatalf("expected a KindConflict error, got %v", err)
	}
}

func TestCreateCategory_DefaultsShowInPrintOverviewToTrue(t *testing.T) {
	svc, _ := newCategoryServiceForTest()

	cat, err := svc.CreateCategory(CreateCategoryInput{Name: "Lighting"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if !cat.ShowInPrintOverview {
		t.Error("expected ShowInPrintOverview to default to true")
	}
}

func TestUpdateCategory_RejectsSelfParent(t *testing.T) {
	svc, repo := newCategoryServiceForTest()
	cat, _ := repo.Create(&domain.Category{Name: "Grip"})

	_, err := svc.UpdateCategory(cat.ID, UpdateCategoryInput{ParentID: &cat.ID})
	if err == nil {
		t.Fatal("expected an error when a category is reparented to itself")
	}
}

func TestUpdateCategory_RejectsCycle(t *testing.T) {
	svc, repo := newCategoryServiceForTest()

	root, _ := repo.Create(&domain.Category{Name: "Root"})
	child, _ := repo.Create(&domain.Category{Name: "Child", ParentID: &root.ID})
	grandchild, _ := repo.Create(&domain.Category{Name: "Grandchild", ParentID: &child.ID})

	// Reparenting root under its own grandchild would create a cycle.
	_, err := svc.UpdateCategory(root.ID, UpdateCategoryInput{ParentID: &grandchild.ID})
	if err == nil {
		t.Fatal("expected a cycle-guard error")
	}
	domainErr, ok := domain.AsDomainError(err)
	if !ok || domainErr.Kind != domain.KindValidation {
		t.Fatalf("expected a KindValidation error, got %v", err)
	}
}

func TestDeleteCategory_RefusesWithEquipment(t *testing.T) {
	svc, repo := newCategoryServiceForTest()
	cat, _ := repo.Create(&domain.Category{Name: "Audio"})
	repo.CountNonDeletedEquipmentFn = func(categoryID int32) (int64, error) {
		return 3, nil
	}

	err := svc.DeleteCategory(cat.ID)
	if err == nil {
		t.Fatal("expected deletion to be refused when equipment is filed under the category")
	}
}

func TestDeleteCategory_RefusesWithSubcategories(t *testing.T) {
	svc, repo := newCategoryServiceForTest()
	parent, _ := repo.Create(&domain.Category{Name: "Parent"})
	childID := parent.ID
	_, _ = repo.Create(&domain.Category{Name: "Child", ParentID: &childID})

	if err := svc.DeleteCategory(parent.ID); err == nil {
		t.Fatal("expected deletion to be refused when subcategories exist")
	}
}

func TestGetPrintHierarchyAndSortPath_NilCategoryIDReturnsNil(t *testing.T) {
	svc, _ := newCategoryServiceForTest()

	sortPath, hierarchy, err := svc.GetPrintHierarchyAndSortPath(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sortPath != nil || hierarchy != nil {
		t.Error("expected nil sort path and hierarchy for a nil category id")
	}
}

func TestGetPrintHierarchyAndSortPath_FallsBackToRootWhenNothingPrintable(t *testing.T) {
	svc, repo := newCategoryServiceForTest()

	root, _ := repo.Create(&domain.Category{Name: "Root", ShowInPrintOverview: false})
	rootID := root.ID
	leaf, _ := repo.Create(&domain.Category{Name: "Leaf", ParentID: &rootID, ShowInPrintOverview: false})

	sortPath, hierarchy, err := svc.GetPrintHierarchyAndSortPath(&leaf.ID)
	if err != nil {
		t.Fatalf("GetPrintHierarchyAndSortPath failed: %v", err)
	}
	if len(sortPath) != 2 {
		t.Fatalf("expected a 2-element sort path (root, leaf), got %v", sortPath)
	}
	if len(hierarchy) != 1 || hierarchy[0].ID != root.ID || hierarchy[0].Level != 1 {
		t.Fatalf("expected the root-alone fallback, got %+v", hierarchy)
	}
}

func TestGetPrintHierarchyAndSortPath_RelevelsOnlyPrintableAncestors(t *testing.T) {
	svc, repo := newCategoryServiceForTest()

	root, _ := repo.Create(&domain.Category{Name: "Root", ShowInPrintOverview: true})
	rootID := root.ID
	hidden, _ := repo.Create(&domain.Category{Name: "Hidden", ParentID: &rootID, ShowInPrintOverview: false})
	hiddenID := hidden.ID
	leaf, _ := repo.Create(&domain.Category{Name: "Leaf", ParentID: &hiddenID, ShowInPrintOverview: true})

	sortPath, hierarchy, err := svc.GetPrintHierarchyAndSortPath(&leaf.ID)
	if err != nil {
		t.Fatalf("GetPrintHierarchyAndSortPath failed: %v", err)
	}
	if len(sortPath) != 3 {
		t.Fatalf("expected a 3-element sort path, got %v", sortPath)
	}
	if len(hierarchy) != 2 {
		t.Fatalf("expected only the two printable ancestors, got %+v", hierarchy)
	}
	if hierarchy[0].Level != 1 || hierarchy[1].Level != 2 {
		t.Fatalf("expected levels re-assigned starting at 1, got %+v", hierarchy)
	}
}

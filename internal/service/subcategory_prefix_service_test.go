package service

import (
	"testing"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func newSubcategoryPrefixServiceForTest() (*SubcategoryPrefixService, *testutil.MockGateway) {
	gw := testutil.NewMockGateway()
	return NewSubcategoryPrefixService(gw, gw.UoW.BarcodeRepo), gw
}

func TestCreateSubcategoryPrefix_NormalizesToUppercase(t *testing.T) {
	svc, gw := newSubcategoryPrefixServiceForTest()
	category, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})

	prefix, err := svc.CreateSubcategoryPrefix(CreateSubcategoryPrefixInput{
		CategoryID: category.ID, Name: "Cameras", Prefix: "ca",
	})
	if err != nil {
		t.Fatalf("CreateSubcategoryPrefix failed: %v", err)
	}
	if prefix.Prefix != "CA" {
		t.Errorf("expected the prefix to be upper-cased, got %q", prefix.Prefix)
	}
}

func TestCreateSubcategoryPrefix_RejectsWrongLength(t *testing.T) {
	svc, gw := newSubcategoryPrefixServiceForTest()
	category, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})

	_, err := svc.CreateSubcategoryPrefix(CreateSubcategoryPrefixInput{
		CategoryID: category.ID, Name: "Cameras", Prefix: "CAM",
	})
	if err == nil {
		t.Fatal("expected an error for a 3-character prefix")
	}
}

func TestCreateSubcategoryPrefix_RejectsNonAlphanumeric(t *testing.T) {
	svc, gw := newSubcategoryPrefixServiceForTest()
	category, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})

	_, err := svc.CreateSubcategoryPrefix(CreateSubcategoryPrefixInput{
		CategoryID: category.ID, Name: "Cameras", Prefix: "C-",
	})
	if err == nil {
		t.Fatal("expected an error for a non-alphanumeric prefix")
	}
}

func TestCreateSubcategoryPrefix_RejectsSecondOverrideForSameCategory(t *testing.T) {
	svc, gw := newSubcategoryPrefixServiceForTest()
	category, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})

	if _, err := svc.CreateSubcategoryPrefix(CreateSubcategoryPrefixInput{
		CategoryID: category.ID, Name: "Cameras", Prefix: "CA",
	}); err != nil {
		t.Fatalf("first CreateSubcategoryPrefix failed: %v", err)
	}

	_, err := svc.CreateSubcategoryPrefix(CreateSubcategoryPrefixInput{
		CategoryID: category.ID, Name: "Cameras Again", Prefix: "CB",
	})
	if err == nil {
		t.Fatal("expected a conflict error for a second override on the same category")
	}
	domainErr, ok := domain.AsDomainError(err)
	if !ok || domainErr.Kind != domain.KindConflict {
		t.Fatalf("expected a KindConflict error, got %v", err)
	}
}

func TestUpdateSubcategoryPrefix_ChangesPrefix(t *testing.T) {
	svc, gw := newSubcategoryPrefixServiceForTest()
	category, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})
	created, _ := svc.CreateSubcategoryPrefix(CreateSubcategoryPrefixInput{
		CategoryID: category.ID, Name: "Cameras", Prefix: "CA",
	})

	newPrefix := "CB"
	updated, err := svc.UpdateSubcategoryPrefix(created.ID, UpdateSubcategoryPrefixInput{Prefix: &newPrefix})
	if err != nil {
		t.Fatalf("UpdateSubcategoryPrefix failed: %v", err)
	}
	if updated.Prefix != "CB" {
		t.Errorf("expected the prefix to update to CB, got %q", updated.Prefix)
	}
}

func TestDeleteSubcategoryPrefix_RemovesOverride(t *testing.T) {
	svc, gw := newSubcategoryPrefixServiceForTest()
	category, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})
	created, _ := svc.CreateSubcategoryPrefix(CreateSubcategoryPrefixInput{
		CategoryID: category.ID, Name: "Cameras", Prefix: "CA",
	})

	if err := svc.DeleteSubcategoryPrefix(created.ID); err != nil {
		t.Fatalf("DeleteSubcategoryPrefix failed: %v", err)
	}
	if _, err := svc.GetSubcategoryPrefix(created.ID); err == nil {
		t.Error("expected the deleted prefix to no longer be retrievable")
	}

	remaining, err := gw.UoW.BarcodeRepo.GetSubcategoryPrefix(category.ID)
	if err != nil {
		t.Fatalf("GetSubcategoryPrefix failed: %v", err)
	}
	if remaining != nil {
		t.Error("expected the barcode-compose read path to no longer see a deleted override")
	}
}

func TestListSubcategoryPrefixes_FiltersByCategoryAndQuery(t *testing.T) {
	svc, gw := newSubcategoryPrefixServiceForTest()
	cameras, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})
	lighting, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Lighting"})
	if _, err := svc.CreateSubcategoryPrefix(CreateSubcategoryPrefixInput{
		CategoryID: cameras.ID, Name: "Cameras", Prefix: "CA",
	}); err != nil {
		t.Fatalf("seeding cameras prefix failed: %v", err)
	}
	if _, err := svc.CreateSubcategoryPrefix(CreateSubcategoryPrefixInput{
		CategoryID: lighting.ID, Name: "Lighting", Prefix: "LI",
	}); err != nil {
		t.Fatalf("seeding lighting prefix failed: %v", err)
	}

	items, err := svc.ListSubcategoryPrefixes(domain.SubcategoryPrefixFilter{CategoryID: &cameras.ID})
	if err != nil {
		t.Fatalf("ListSubcategoryPrefixes failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Cameras" {
		t.Errorf("expected exactly the Cameras prefix, got %+v", items)
	}

	byQuery, err := svc.ListSubcategoryPrefixes(domain.SubcategoryPrefixFilter{Query: "light"})
	if err != nil {
		t.Fatalf("ListSubcategoryPrefixes failed: %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].Name != "Lighting" {
		t.Errorf("expected exactly the Lighting prefix, got %+v", byQuery)
	}
}

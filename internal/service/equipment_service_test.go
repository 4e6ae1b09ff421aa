package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func TestCreateEquipment_AllocatesBarcodeWhenNoneGiven(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewEquipmentService(gw)
	category, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})

	equipment, err := svc.CreateEquipment(CreateEquipmentInput{
		Name:            "Camera A",
		CategoryID:      category.ID,
		ReplacementCost: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("CreateEquipment failed: %v", err)
	}
	if equipment.Barcode == "" {
		t.Fatal("expected an auto-allocated barcode")
	}
	if !domain.ValidateBarcodeFormat(equipment.Barcode) {
		t.Errorf("expected the allocated barcode to pass format validation, got %q", equipment.Barcode)
	}
	if equipment.Status != domain.EquipmentAvailable {
		t.Errorf("expected a freshly created unit to start AVAILABLE, got %s", equipment.Status)
	}
}

func TestCreateEquipment_RejectsDuplicateCustomBarcode(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewEquipmentService(gw)
	category, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})

	barcode, err := domain.ComposeBarcode(1, "")
	if err != nil {
		t.Fatalf("ComposeBarcode failed: %v", err)
	}
	if _, err := svc.CreateEquipment(CreateEquipmentInput{
		Name: "Camera A", CategoryID: category.ID, ReplacementCost: decimal.NewFromInt(1000), CustomBarcode: &barcode,
	}); err != nil {
		t.Fatalf("first CreateEquipment failed: %v", err)
	}

	_, err = svc.CreateEquipment(CreateEquipmentInput{
		Name: "Camera B", CategoryID: category.ID, ReplacementCost: decimal.NewFromInt(1000), CustomBarcode: &barcode,
	})
	if err == nil {
		t.Fatal("expected a conflict error for a duplicate custom barcode")
	}
	domainErr, ok := domain.AsDomainError(err)
	if !ok || domainErr.Kind != domain.KindConflict {
		t.Fatalf("expected a KindConflict error, got %v", err)
	}
}

func TestCreateEquipment_RejectsReplacementCostOutOfRange(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewEquipmentService(gw)
	category, _ := gw.UoW.CategoryRepo.Create(&domain.Category{Name: "Cameras"})

	_, err := svc.CreateEquipment(CreateEquipmentInput{
		Name: "Camera", CategoryID: category.ID, ReplacementCost: decimal.NewFromInt(-1),
	})
	if err == nil {
		t.Fatal("expected an error for a negative replacement cost")
	}
}

func TestTransitionStatus_RejectsDirectRentedRequest(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewEquipmentService(gw)
	equipment, _ := gw.UoW.EquipmentRepo.Create(&domain.Equipment{
		Name: "Camera", Status: domain.EquipmentAvailable, ReplacementCost: decimal.NewFromInt(1000),
	})

	_, err := svc.TransitionStatus(equipment.ID, domain.EquipmentRented)
	if err == nil {
		t.Fatal("expected external callers to be refused a direct RENTED transition")
	}
}

func TestDeleteEquipment_RefusesWithActiveBookings(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewEquipmentService(gw)
	equipment, _ := gw.UoW.EquipmentRepo.Create(&domain.Equipment{
		Name: "Camera", Status: domain.EquipmentAvailable, ReplacementCost: decimal.NewFromInt(1000),
	})
	gw.UoW.BookingRepo.CountBlockingByEquipmentFn = func(equipmentID int32) (int64, error) {
		return 2, nil
	}

	if err := svc.DeleteEquipment(equipment.ID); err == nil {
		t.Fatal("expected deletion to be refused while blocking bookings exist")
	}
}

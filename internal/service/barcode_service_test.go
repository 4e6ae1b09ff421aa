package service

import (
	"testing"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func TestGenerateBarcode_AllocatesSequentially(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewBarcodeService(gw, gw.UoW.BarcodeRepo)

	first, err := svc.GenerateBarcode(nil)
	if err != nil {
		t.Fatalf("GenerateBarcode failed: %v", err)
	}
	second, err := svc.GenerateBarcode(nil)
	if err != nil {
		t.Fatalf("GenerateBarcode failed: %v", err)
	}
	if first == second {
		t.Error("expected two successive generations to produce different barcodes")
	}
	if !domain.ValidateBarcodeFormat(first) || !domain.ValidateBarcodeFormat(second) {
		t.Error("expected both generated barcodes to pass format validation")
	}
}

func TestGenerateBarcode_UsesSubcategoryPrefix(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewBarcodeService(gw, gw.UoW.BarcodeRepo)

	categoryID := int32(5)
	gw.UoW.BarcodeRepo.Prefixes[categoryID] = &domain.SubcategoryPrefix{CategoryID: categoryID, Prefix: "12"}

	barcode, err := svc.GenerateBarcode(&categoryID)
	if err != nil {
		t.Fatalf("GenerateBarcode failed: %v", err)
	}
	if barcode[:2] != "12" {
		t.Errorf("expected the barcode to start with the category prefix 12, got %q", barcode)
	}
	if _, err := domain.ParseBarcode(barcode); err != nil {
		t.Errorf("expected the prefixed barcode to still pass checksum validation: %v", err)
	}
}

func TestGetNextSequenceNumber_PeeksWithoutAllocating(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewBarcodeService(gw, gw.UoW.BarcodeRepo)

	next, err := svc.GetNextSequenceNumber()
	if err != nil {
		t.Fatalf("GetNextSequenceNumber failed: %v", err)
	}
	if next != 1 {
		t.Errorf("expected the first peek to report 1, got %d", next)
	}

	// Peeking again must not have allocated anything.
	again, err := svc.GetNextSequenceNumber()
	if err != nil {
		t.Fatalf("GetNextSequenceNumber failed: %v", err)
	}
	if again != 1 {
		t.Errorf("expected a second peek with no intervening allocation to still report 1, got %d", again)
	}
}

func TestValidateBarcodeFormat_RejectsMalformed(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewBarcodeService(gw, gw.UoW.BarcodeRepo)

	if svc.ValidateBarcodeFormat("not-a-barcode") {
		t.Error("expected a malformed barcode to fail format validation")
	}
}

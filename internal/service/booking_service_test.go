package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func newBookingServiceForTest() (*BookingService, *testutil.MockGateway) {
	gw := testutil.NewMockGateway()
	svc := NewBookingService(gw, NewAvailabilityService())
	return svc, gw
}

func seedClientAndEquipment(gw *testutil.MockGateway) (clientID, equipmentID int32) {
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Test Client", Status: domain.ClientActive})
	equipment, _ := gw.UoW.EquipmentRepo.Create(&domain.Equipment{
		Name:            "Camera A",
		Barcode:         "00000000100",
		CategoryID:      1,
		Status:          domain.EquipmentAvailable,
		ReplacementCost: decimal.NewFromInt(1000),
	})
	return client.ID, equipment.ID
}

func TestCreateBooking_Success(t *testing.T) {
	svc, gw := newBookingServiceForTest()
	clientID, equipmentID := seedClientAndEquipment(gw)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	booking, err := svc.CreateBooking(domain.CreateBookingInput{
		ClientID:    clientID,
		EquipmentID: equipmentID,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: decimal.NewFromInt(100),
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if booking.BookingStatus != domain.BookingActive {
		t.Errorf("expected a freshly created booking to start ACTIVE, got %s", booking.BookingStatus)
	}
	if booking.PaymentStatus != domain.PaymentPending {
		t.Errorf("expected a freshly created booking to start PENDING payment, got %s", booking.PaymentStatus)
	}
	if !booking.DepositAmount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected the default 20%% deposit (20), got %s", booking.DepositAmount)
	}

	equipment, _ := gw.UoW.EquipmentRepo.Get(equipmentID, false)
	if equipment.Status != domain.EquipmentRented {
		t.Errorf("expected equipment to flip to RENTED, got %s", equipment.Status)
	}
}

func TestCreateBooking_RejectsInvertedDateRange(t *testing.T) {
	svc, gw := newBookingServiceForTest()
	clientID, equipmentID := seedClientAndEquipment(gw)

	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateBooking(domain.CreateBookingInput{
		ClientID:    clientID,
		EquipmentID: equipmentID,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: decimal.NewFromInt(100),
		Quantity:    1,
	})
	if err == nil {
		t.Fatal("expected an error for start date after end date")
	}
}

func TestCreateBooking_RejectsOverlappingWindow(t *testing.T) {
	svc, gw := newBookingServiceForTest()
	clientID, equipmentID := seedClientAndEquipment(gw)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)
	if _, err := svc.CreateBooking(domain.CreateBookingInput{
		ClientID: clientID, EquipmentID: equipmentID, StartDate: start, EndDate: end,
		TotalAmount: decimal.NewFromInt(100), Quantity: 1,
	}); err != nil {
		t.Fatalf("seeding first booking failed: %v", err)
	}

	// Overlapping window on the same equipment must be refused.
	overlapStart := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	overlapEnd := time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateBooking(domain.CreateBookingInput{
		ClientID: clientID, EquipmentID: equipmentID, StartDate: overlapStart, EndDate: overlapEnd,
		TotalAmount: decimal.NewFromInt(100), Quantity: 1,
	})
	if err == nil {
		t.Fatal("expected an availability error for an overlapping window")
	}
	domainErr, ok := domain.AsDomainError(err)
	if !ok || domainErr.Kind != domain.KindAvailability {
		t.Fatalf("expected a KindAvailability error, got %v", err)
	}
}

func TestBatchCreateBookings_PartialSuccess(t *testing.T) {
	svc, gw := newBookingServiceForTest()
	clientID, equipmentID := seedClientAndEquipment(gw)
	_, otherEquipmentID := seedClientAndEquipment(gw)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	// Pre-book otherEquipmentID so its batch item is guaranteed to fail.
	if _, err := svc.CreateBooking(domain.CreateBookingInput{
		ClientID: clientID, EquipmentID: otherEquipmentID, StartDate: start, EndDate: end,
		TotalAmount: decimal.NewFromInt(50), Quantity: 1,
	}); err != nil {
		t.Fatalf("seeding conflicting booking failed: %v", err)
	}

	items := []domain.CreateBookingInput{
		{ClientID: clientID, EquipmentID: equipmentID, StartDate: start, EndDate: end, TotalAmount: decimal.NewFromInt(100), Quantity: 1},
		{ClientID: clientID, EquipmentID: otherEquipmentID, StartDate: start, EndDate: end, TotalAmount: decimal.NewFromInt(100), Quantity: 1},
	}

	result, err := svc.BatchCreateBookings(items, nil)
	if err != nil {
		t.Fatalf("expected partial success, not a hard failure: %v", err)
	}
	if len(result.Created) != 1 {
		t.Errorf("expected exactly 1 created booking, got %d", len(result.Created))
	}
	if len(result.Failed) != 1 {
		t.Errorf("expected exactly 1 failed item, got %d", len(result.Failed))
	}
}

func TestBatchCreateBookings_HardFailsWhenNothingSucceeds(t *testing.T) {
	svc, gw := newBookingServiceForTest()
	clientID, equipmentID := seedClientAndEquipment(gw)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	if _, err := svc.CreateBooking(domain.CreateBookingInput{
		ClientID: clientID, EquipmentID: equipmentID, StartDate: start, EndDate: end,
		TotalAmount: decimal.NewFromInt(100), Quantity: 1,
	}); err != nil {
		t.Fatalf("seeding booking failed: %v", err)
	}

	items := []domain.CreateBookingInput{
		{ClientID: clientID, EquipmentID: equipmentID, StartDate: start, EndDate: end, TotalAmount: decimal.NewFromInt(100), Quantity: 1},
	}
	_, err := svc.BatchCreateBookings(items, nil)
	if err == nil {
		t.Fatal("expected a hard failure when every batch item fails")
	}
}

func TestBatchCreateBookings_RejectsOversizedBatch(t *testing.T) {
	svc, _ := newBookingServiceForTest()
	items := make([]domain.CreateBookingInput, domain.MaxBatchSize+1)
	_, err := svc.BatchCreateBookings(items, nil)
	if err == nil {
		t.Fatal("expected an error for a batch exceeding the maximum size")
	}
}

func TestTransitionStatus_CascadesEquipmentReleaseOnCompletion(t *testing.T) {
	svc, gw := newBookingServiceForTest()
	clientID, equipmentID := seedClientAndEquipment(gw)

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	booking, err := svc.CreateBooking(domain.CreateBookingInput{
		ClientID: clientID, EquipmentID: equipmentID, StartDate: start, EndDate: end,
		TotalAmount: decimal.NewFromInt(100), Quantity: 1,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if _, err := svc.TransitionStatus(booking.ID, domain.BookingCompleted); err != nil {
		t.Fatalf("TransitionStatus to COMPLETED failed: %v", err)
	}

	equipment, _ := gw.UoW.EquipmentRepo.Get(equipmentID, false)
	if equipment.Status != domain.EquipmentAvailable {
		t.Errorf("expected equipment to return to AVAILABLE once its only blocking booking completed, got %s", equipment.Status)
	}
}

func TestTransitionStatus_RejectsIllegalTransition(t *testing.T) {
	svc, gw := newBookingServiceForTest()
	clientID, equipmentID := seedClientAndEquipment(gw)

	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)
	booking, err := svc.CreateBooking(domain.CreateBookingInput{
		ClientID: clientID, EquipmentID: equipmentID, StartDate: start, EndDate: end,
		TotalAmount: decimal.NewFromInt(100), Quantity: 1,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	// ACTIVE -> PENDING is not in the transition table.
	_, err = svc.TransitionStatus(booking.ID, domain.BookingPending)
	if err == nil {
		t.Fatal("expected an error for an illegal status transition")
	}
	domainErr, ok := domain.AsDomainError(err)
	if !ok || domainErr.Kind != domain.KindState {
		t.Fatalf("expected a KindState error, got %v", err)
	}
}

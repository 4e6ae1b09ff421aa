package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func TestCreateProject_RejectsInvertedDateRange(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewProjectService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Client"})

	_, err := svc.CreateProject(domain.CreateProjectInput{
		Name:      "Shoot",
		ClientID:  client.ID,
		StartDate: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	if err == nil {
		t.Fatal("expected an error for an end date before the start date")
	}
}

func TestCreateProject_DefaultsToDraftAndUnpaid(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewProjectService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Client"})

	project, err := svc.CreateProject(domain.CreateProjectInput{
		Name:      "Shoot",
		ClientID:  client.ID,
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if project.Status != domain.ProjectDraft {
		t.Errorf("expected a new project to start DRAFT, got %s", project.Status)
	}
	if project.PaymentStatus != domain.ProjectPaymentUnpaid {
		t.Errorf("expected a new project to start UNPAID, got %s", project.PaymentStatus)
	}
}

func TestAddBooking_RecomputesPaymentRollup(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewProjectService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Client"})
	project, _ := gw.UoW.ProjectRepo.Create(&domain.Project{
		Name: "Shoot", ClientID: client.ID, PaymentStatus: domain.ProjectPaymentUnpaid,
	})
	booking, _ := gw.UoW.BookingRepo.Create(&domain.Booking{
		ClientID: client.ID, EquipmentID: 1, PaymentStatus: domain.PaymentPaid,
		TotalAmount: decimal.NewFromInt(100),
	})

	if _, err := svc.AddBooking(project.ID, booking.ID); err != nil {
		t.Fatalf("AddBooking failed: %v", err)
	}

	updated, err := gw.UoW.ProjectRepo.Get(project.ID, false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if updated.PaymentStatus != domain.ProjectPaymentPaid {
		t.Errorf("expected the rollup to become PAID once the sole booking is PAID, got %s", updated.PaymentStatus)
	}
}

func TestDeleteProject_ClearsBookingReferences(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewProjectService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Client"})
	project, _ := gw.UoW.ProjectRepo.Create(&domain.Project{Name: "Shoot", ClientID: client.ID})
	projectID := project.ID
	booking, _ := gw.UoW.BookingRepo.Create(&domain.Booking{
		ClientID: client.ID, EquipmentID: 1, ProjectID: &projectID,
		TotalAmount: decimal.NewFromInt(100),
	})

	if err := svc.DeleteProject(project.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	updatedBooking, err := gw.UoW.BookingRepo.Get(booking.ID)
	if err != nil {
		t.Fatalf("Get booking failed: %v", err)
	}
	if updatedBooking.ProjectID != nil {
		t.Error("expected the booking's project reference to be cleared, not cascaded")
	}
}

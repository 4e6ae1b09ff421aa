package service

import (
	"testing"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func TestCreateClient_RejectsBlankName(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewClientService(gw)

	_, err := svc.CreateClient(CreateClientInput{Name: "   "})
	if err == nil {
		t.Fatal("expected an error for a blank client name")
	}
}

func TestCreateClient_DefaultsToActive(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewClientService(gw)

	client, err := svc.CreateClient(CreateClientInput{Name: "Acme Productions"})
	if err != nil {
		t.Fatalf("CreateClient failed: %v", err)
	}
	if client.Status != domain.ClientActive {
		t.Errorf("expected a new client to start ACTIVE, got %s", client.Status)
	}
}

func TestUpdateClient_RejectsBlankName(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewClientService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme", Status: domain.ClientActive})

	blank := "   "
	_, err := svc.UpdateClient(client.ID, UpdateClientInput{Name: &blank})
	if err == nil {
		t.Fatal("expected an error for a blank name update")
	}
}

func TestSetStatus_MovesFreelyBetweenStates(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewClientService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme", Status: domain.ClientActive})

	updated, err := svc.SetStatus(client.ID, domain.ClientBlocked)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != domain.ClientBlocked {
		t.Errorf("expected status BLOCKED, got %s", updated.Status)
	}

	updated, err = svc.SetStatus(client.ID, domain.ClientActive)
	if err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	if updated.Status != domain.ClientActive {
		t.Errorf("expected status to move back to ACTIVE, got %s", updated.Status)
	}
}

func TestDeleteClient_SoftDeleteHidesFromDefaultLookup(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewClientService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme", Status: domain.ClientActive})

	if err := svc.DeleteClient(client.ID); err != nil {
		t.Fatalf("DeleteClient failed: %v", err)
	}

	if _, err := svc.GetClient(client.ID, false); err == nil {
		t.Error("expected a soft-deleted client to be hidden from a default lookup")
	}
	if _, err := svc.GetClient(client.ID, true); err != nil {
		t.Errorf("expected a soft-deleted client to still be visible with includeDeleted=true: %v", err)
	}
}

func TestHardDeleteClient_RefusesWithActiveBookings(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewClientService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme", Status: domain.ClientActive})
	gw.UoW.ClientRepo.CountActiveBookingsFn = func(clientID int32) (int64, error) {
		return 1, nil
	}

	err := svc.HardDeleteClient(client.ID)
	if err == nil {
		t.Fatal("expected hard delete to be refused while active bookings reference the client")
	}
	domainErr, ok := domain.AsDomainError(err)
	if !ok || domainErr.Kind != domain.KindBusiness {
		t.Fatalf("expected a KindBusiness error, got %v", err)
	}
}

func TestHardDeleteClient_SucceedsWithNoActiveBookings(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewClientService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme", Status: domain.ClientActive})

	if err := svc.HardDeleteClient(client.ID); err != nil {
		t.Fatalf("HardDeleteClient failed: %v", err)
	}
	if _, ok := gw.UoW.ClientRepo.Clients[client.ID]; ok {
		t.Error("expected the client record to be permanently removed")
	}
}

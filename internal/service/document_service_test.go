package service

import (
	"testing"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func TestCreateDocument_RejectsMissingFilePath(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewDocumentService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme"})

	_, err := svc.CreateDocument(CreateDocumentInput{
		ClientID: client.ID,
		Type:     domain.DocumentContract,
		Title:    "Rental Contract",
		FileName: "contract.pdf",
	})
	if err == nil {
		t.Fatal("expected an error when the file path is missing")
	}
}

func TestCreateDocument_DefaultsToDraft(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewDocumentService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme"})

	document, err := svc.CreateDocument(CreateDocumentInput{
		ClientID: client.ID,
		Type:     domain.DocumentContract,
		Title:    "Rental Contract",
		FilePath: "/documents/contract.pdf",
		FileName: "contract.pdf",
	})
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if document.Status != domain.DocumentDraft {
		t.Errorf("expected a new document to start DRAFT, got %s", document.Status)
	}
}

func TestCreateDocument_RejectsUnknownBooking(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewDocumentService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme"})
	missingBookingID := int32(999)

	_, err := svc.CreateDocument(CreateDocumentInput{
		ClientID:  client.ID,
		BookingID: &missingBookingID,
		Type:      domain.DocumentContract,
		Title:     "Rental Contract",
		FilePath:  "/documents/contract.pdf",
		FileName:  "contract.pdf",
	})
	if err == nil {
		t.Fatal("expected an error for a booking reference that does not exist")
	}
}

func TestUpdateDocument_ChangesStatus(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewDocumentService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme"})
	document, _ := gw.UoW.DocumentRepo.Create(&domain.Document{
		ClientID: client.ID, Type: domain.DocumentContract, Title: "Contract",
		FilePath: "/documents/contract.pdf", FileName: "contract.pdf", Status: domain.DocumentDraft,
	})

	approved := domain.DocumentApproved
	updated, err := svc.UpdateDocument(document.ID, UpdateDocumentInput{Status: &approved})
	if err != nil {
		t.Fatalf("UpdateDocument failed: %v", err)
	}
	if updated.Status != domain.DocumentApproved {
		t.Errorf("expected status APPROVED, got %s", updated.Status)
	}
}

func TestDeleteDocument_SoftDeleteHidesFromDefaultLookup(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewDocumentService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme"})
	document, _ := gw.UoW.DocumentRepo.Create(&domain.Document{
		ClientID: client.ID, Type: domain.DocumentContract, Title: "Contract",
		FilePath: "/documents/contract.pdf", FileName: "contract.pdf", Status: domain.DocumentDraft,
	})

	if err := svc.DeleteDocument(document.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if _, err := svc.GetDocument(document.ID, false); err == nil {
		t.Error("expected a soft-deleted document to be hidden from a default lookup")
	}
}

func TestClearBookingReference_DetachesMatchingDocuments(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := NewDocumentService(gw)
	client, _ := gw.UoW.ClientRepo.Create(&domain.Client{Name: "Acme"})
	booking, _ := gw.UoW.BookingRepo.Create(&domain.Booking{ClientID: client.ID, EquipmentID: 1})
	bookingID := booking.ID
	document, _ := gw.UoW.DocumentRepo.Create(&domain.Document{
		ClientID: client.ID, BookingID: &bookingID, Type: domain.DocumentInvoice, Title: "Invoice",
		FilePath: "/documents/invoice.pdf", FileName: "invoice.pdf", Status: domain.DocumentDraft,
	})

	if err := svc.ClearBookingReference(bookingID); err != nil {
		t.Fatalf("ClearBookingReference failed: %v", err)
	}

	updated, err := svc.GetDocument(document.ID, false)
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if updated.BookingID != nil {
		t.Error("expected the document's booking reference to be cleared")
	}
}

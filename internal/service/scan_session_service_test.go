package service

import (
	"testing"
	"time"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/testutil"
)

func TestCreateSession_DefaultsUntitledName(t *testing.T) {
	repo := testutil.NewMockScanSessionRepository()
	svc := NewScanSessionService(repo)

	session, err := svc.CreateSession(CreateScanSessionInput{Name: "   "})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if session.Name != "Untitled scan session" {
		t.Errorf("expected the blank-name default, got %q", session.Name)
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("expected a freshly created session to expire in the future")
	}
}

func TestListSessions_NilUserIDReturnsEmpty(t *testing.T) {
	repo := testutil.NewMockScanSessionRepository()
	svc := NewScanSessionService(repo)

	user := "alice"
	if _, err := svc.CreateSession(CreateScanSessionInput{UserID: &user, Name: "Cart"}); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	sessions, err := svc.ListSessions(nil)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected a nil userID to yield no sessions regardless of what exists, got %d", len(sessions))
	}

	sessions, err = svc.ListSessions(&user)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("expected exactly 1 session for the owning user, got %d", len(sessions))
	}
}

func TestToBatchInput_FallsBackToSharedWindow(t *testing.T) {
	repo := testutil.NewMockScanSessionRepository()
	svc := NewScanSessionService(repo)

	itemStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	session := &domain.ScanSession{
		Items: []domain.ScanSessionItem{
			{EquipmentID: 1, Barcode: "x"},
			{EquipmentID: 2, Barcode: "y", BookingStartDate: &itemStart},
		},
	}

	defaultStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	defaultEnd := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	inputs := svc.ToBatchInput(session, 7, defaultStart, defaultEnd)
	if len(inputs) != 2 {
		t.Fatalf("expected 2 batch inputs, got %d", len(inputs))
	}
	if !inputs[0].StartDate.Equal(defaultStart) {
		t.Errorf("expected item 0 to fall back to the shared start, got %v", inputs[0].StartDate)
	}
	if !inputs[1].StartDate.Equal(itemStart) {
		t.Errorf("expected item 1 to keep its own scan-time start, got %v", inputs[1].StartDate)
	}
	for _, in := range inputs {
		if in.ClientID != 7 {
			t.Errorf("expected every item to carry the checkout client id, got %d", in.ClientID)
		}
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	repo := testutil.NewMockScanSessionRepository()
	svc := NewScanSessionService(repo)

	user := "bob"
	fresh, err := svc.CreateSession(CreateScanSessionInput{UserID: &user, Name: "Fresh"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	expired, err := svc.CreateSession(CreateScanSessionInput{UserID: &user, Name: "Expired"})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	repo.Sessions[expired.ID].ExpiresAt = time.Now().Add(-time.Hour)

	purged, err := svc.PurgeExpiredSessions()
	if err != nil {
		t.Fatalf("PurgeExpiredSessions failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("expected exactly 1 purged session, got %d", purged)
	}
	if _, err := repo.Get(fresh.ID, &user); err != nil {
		t.Errorf("expected the non-expired session to survive the sweep: %v", err)
	}
	if _, err := repo.Get(expired.ID, &user); err == nil {
		t.Error("expected the expired session to be gone after the sweep")
	}
}

package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

// ScanSessionService manages ephemeral, per-user scanning carts: items
// accumulate here before being checked out as a booking batch. Sessions
// expire on a fixed TTL and are swept by PurgeExpiredSessions.
type ScanSessionService struct {
	repo domain.ScanSessionRepository
}

func NewScanSessionService(repo domain.ScanSessionRepository) *ScanSessionService {
	return &ScanSessionService{repo: repo}
}

// GetSession preserves the repository's nil-userID quirk: a nil userID on
// List yields an empty slice, but Get still looks up by id regardless.
func (s *ScanSessionService) GetSession(id uuid.UUID, userID *string) (*domain.ScanSession, error) {
	return s.repo.Get(id, userID)
}

func (s *ScanSessionService) ListSessions(userID *string) ([]*domain.ScanSession, error) {
	return s.repo.List(userID)
}

type CreateScanSessionInput struct {
	UserID *string
	Name   string
	Items  []domain.ScanSessionItem
}

func (s *ScanSessionService) CreateSession(input CreateScanSessionInput) (*domain.ScanSession, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Untitled scan session"
	}

	now := time.Now()
	session := &domain.ScanSession{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Name:      name,
		Items:     input.Items,
		ExpiresAt: now.Add(domain.ScanSessionTTL),
	}
	return s.repo.Create(session)
}

// ReplaceItems overwrites a session's item list wholesale -- the session
// behaves as a cart, not an append-only log.
func (s *ScanSessionService) ReplaceItems(id uuid.UUID, userID *string, items []domain.ScanSessionItem) (*domain.ScanSession, error) {
	return s.repo.ReplaceItems(id, userID, items)
}

func (s *ScanSessionService) DeleteSession(id uuid.UUID, userID *string) error {
	return s.repo.Delete(id, userID)
}

// ToBatchInput projects a session's items into the batch booking shape the
// Booking engine expects, applying a shared window when an item didn't
// carry its own scan-time booking dates. TotalAmount is left at zero; the
// scan-session Checkout handler passes the result to
// BookingService.BatchCreateBookings without filling it in.
func (s *ScanSessionService) ToBatchInput(session *domain.ScanSession, clientID int32, defaultStart, defaultEnd time.Time) []domain.CreateBookingInput {
	inputs := make([]domain.CreateBookingInput, 0, len(session.Items))
	for _, item := range session.Items {
		start := defaultStart
		if item.BookingStartDate != nil {
			start = *item.BookingStartDate
		}
		end := defaultEnd
		if item.BookingEndDate != nil {
			end = *item.BookingEndDate
		}
		inputs = append(inputs, domain.CreateBookingInput{
			ClientID:    clientID,
			EquipmentID: item.EquipmentID,
			StartDate:   start,
			EndDate:     end,
			Quantity:    1,
		})
	}
	return inputs
}

// PurgeExpiredSessions hard-deletes every session whose TTL has passed,
// intended to run on a periodic background tick rather than per-request.
func (s *ScanSessionService) PurgeExpiredSessions() (int64, error) {
	return s.repo.PurgeExpired(time.Now())
}

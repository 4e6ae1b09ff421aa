package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScanSessionItem is one scanned-but-not-yet-booked item accumulated into
// a cart-like session before it is committed as a booking batch.
type ScanSessionItem struct {
	EquipmentID      int32      `json:"equipmentId"`
	Barcode          string     `json:"barcode"`
	Name             string     `json:"name"`
	CategoryID       *int32     `json:"categoryId,omitempty"`
	BookingStartDate *time.Time `json:"bookingStartDate,omitempty"`
	BookingEndDate   *time.Time `json:"bookingEndDate,omitempty"`
}

// ScanSession is an ephemeral, per-user scratch area with a fixed TTL.
type ScanSession struct {
	ID        uuid.UUID         `json:"id"`
	UserID    *string           `json:"userId,omitempty"`
	Name      string            `json:"name"`
	Items     []ScanSessionItem `json:"items"`
	ExpiresAt time.Time         `json:"expiresAt"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ScanSessionTTL is the fixed lifetime of a newly created session.
const ScanSessionTTL = 7 * 24 * time.Hour

type ScanSessionRepository interface {
	Get(id uuid.UUID, userID *string) (*ScanSession, error)
	// List returns only non-expired sessions, and -- by deliberate design --
	// an empty slice (not "all sessions") when userID is nil.
	List(userID *string) ([]*ScanSession, error)
	Create(session *ScanSession) (*ScanSession, error)
	ReplaceItems(id uuid.UUID, userID *string, items []ScanSessionItem) (*ScanSession, error)
	Delete(id uuid.UUID, userID *string) error
	// PurgeExpired hard-deletes sessions whose ExpiresAt has passed; called
	// by the optional background TTL sweep.
	PurgeExpired(now time.Time) (int64, error)
}

package domain

import "time"

type DocumentType string

const (
	DocumentContract      DocumentType = "CONTRACT"
	DocumentInvoice       DocumentType = "INVOICE"
	DocumentReceipt       DocumentType = "RECEIPT"
	DocumentPassport      DocumentType = "PASSPORT"
	DocumentDamageReport  DocumentType = "DAMAGE_REPORT"
	DocumentInsurance     DocumentType = "INSURANCE"
	DocumentOther         DocumentType = "OTHER"
)

type DocumentStatus string

const (
	DocumentDraft       DocumentStatus = "DRAFT"
	DocumentPending     DocumentStatus = "PENDING"
	DocumentUnderReview DocumentStatus = "UNDER_REVIEW"
	DocumentApproved    DocumentStatus = "APPROVED"
	DocumentRejected    DocumentStatus = "REJECTED"
	DocumentExpired     DocumentStatus = "EXPIRED"
	DocumentCancelled   DocumentStatus = "CANCELLED"
)

// Document is a metadata record for a file associated with a client and,
// optionally, a booking. The actual bytes live behind the out-of-scope
// storage collaborator (internal/repository/storage); this entity only
// tracks where they are.
type Document struct {
	ID        int32          `json:"id"`
	ClientID  int32          `json:"clientId"`
	BookingID *int32         `json:"bookingId,omitempty"`
	Type      DocumentType   `json:"type"`
	Title     string         `json:"title"`
	FilePath  string         `json:"filePath"`
	FileName  string         `json:"fileName"`
	FileSize  int64          `json:"fileSize"`
	MimeType  string         `json:"mimeType"`
	Status    DocumentStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt *time.Time     `json:"deletedAt,omitempty"`
}

type DocumentFilter struct {
	ClientID       *int32
	BookingID      *int32
	Type           *DocumentType
	Status         *DocumentStatus
	IncludeDeleted bool
}

type DocumentRepository interface {
	Get(id int32, includeDeleted bool) (*Document, error)
	List(filter DocumentFilter, page Page) ([]*Document, int64, error)
	Create(document *Document) (*Document, error)
	Update(document *Document) (*Document, error)
	SoftDelete(id int32) error
	// ClearBookingReference nulls out BookingID on every document that
	// references bookingID -- deleting a booking clears the reference in
	// attached documents rather than cascading the delete.
	ClearBookingReference(bookingID int32) error
}

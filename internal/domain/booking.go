package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingOverdue   BookingStatus = "OVERDUE"
)

// BlockingBookingStatuses are the statuses that reserve the underlying
// equipment unit.
var BlockingBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingActive}

func IsBlockingStatus(s BookingStatus) bool {
	for _, b := range BlockingBookingStatuses {
		if b == s {
			return true
		}
	}
	return false
}

// BookingStatusTransitions is the allowed-transition table for booking status.
var BookingStatusTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingActive, BookingCancelled},
	BookingActive:    {BookingCompleted, BookingOverdue},
	BookingOverdue:   {BookingCompleted, BookingActive},
	BookingCompleted: {},
	BookingCancelled: {},
}

func CanTransitionBooking(from, to BookingStatus) bool {
	for _, allowed := range BookingStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPartial  PaymentStatus = "PARTIAL"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentOverdue  PaymentStatus = "OVERDUE"
)

// PaymentStatusTransitions is the allowed-transition table for payment status.
var PaymentStatusTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPartial, PaymentPaid, PaymentOverdue},
	PaymentPartial:  {PaymentPaid, PaymentRefunded, PaymentOverdue},
	PaymentPaid:     {PaymentRefunded},
	PaymentOverdue:  {PaymentPartial, PaymentPaid},
	PaymentRefunded: {},
}

func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, allowed := range PaymentStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Booking reserves one quantity of a single equipment item for a closed
// time window on behalf of a client, optionally grouped into a project.
type Booking struct {
	ID              int32         `json:"id"`
	ClientID        int32         `json:"clientId"`
	EquipmentID     int32         `json:"equipmentId"`
	ProjectID       *int32        `json:"projectId,omitempty"`
	StartDate       time.Time     `json:"startDate"`
	EndDate         time.Time     `json:"endDate"`
	Quantity        int           `json:"quantity"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	DepositAmount   decimal.Decimal `json:"depositAmount"`
	BookingStatus   BookingStatus `json:"bookingStatus"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	Notes           *string       `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	// Eagerly-resolved nested data, populated by the repository on demand.
	Client    *Client    `json:"client,omitempty"`
	Equipment *Equipment `json:"equipment,omitempty"`
	Project   *Project   `json:"project,omitempty"`
}

// DefaultDepositRate is the fraction of TotalAmount used as the deposit
// when the caller doesn't supply one explicitly.
var DefaultDepositRate = decimal.NewFromFloat(0.2)

// BookingRef is the thin shape returned by conflict listings -- just enough
// for a caller to identify and link to the conflicting reservation.
type BookingRef struct {
	ID            int32         `json:"id"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       time.Time     `json:"endDate"`
	BookingStatus BookingStatus `json:"bookingStatus"`
	ProjectID     *int32        `json:"projectId,omitempty"`
	ProjectName   *string       `json:"projectName,omitempty"`
}

type CreateBookingInput struct {
	ClientID      int32
	EquipmentID   int32
	ProjectID     *int32
	StartDate     time.Time
	EndDate       time.Time
	TotalAmount   decimal.Decimal
	DepositAmount *decimal.Decimal
	Quantity      int
	Notes         *string
}

type UpdateBookingInput struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Quantity      *int
	TotalAmount   *decimal.Decimal
	DepositAmount *decimal.Decimal
	Notes         *string
}

// BatchCreateResult is the outcome of a batch/cart commit.
type BatchCreateResult struct {
	Created []*Booking         `json:"created"`
	Failed  []BatchCreateFailure `json:"failed"`
}

type BatchCreateFailure struct {
	EquipmentID int32  `json:"equipmentId"`
	Kind        ErrorKind `json:"kind"`
	Message     string `json:"message"`
}

type BookingFilter struct {
	Query          *string // matches client/project free text
	EquipmentQuery *string
	EquipmentID    *int32
	ClientID       *int32
	ProjectID      *int32
	BookingStatus  *BookingStatus
	PaymentStatus  *PaymentStatus
	StartDate      *time.Time
	EndDate        *time.Time
	ActiveOnly     bool // restrict to blocking statuses
}

type BookingRepository interface {
	Get(id int32) (*Booking, error)
	GetMany(ids []int32) ([]*Booking, error)
	GetByEquipment(equipmentID int32) ([]*Booking, error)
	GetByProject(projectID int32) ([]*Booking, error)
	List(filter BookingFilter, page Page) ([]*Booking, int64, error)
	Create(booking *Booking) (*Booking, error)
	Update(booking *Booking) (*Booking, error)
	UpdateStatus(id int32, status BookingStatus) (*Booking, error)
	UpdatePaymentStatus(id int32, status PaymentStatus) (*Booking, error)
	SetProject(id int32, projectID *int32) (*Booking, error)
	ClearProjectReferences(projectID int32) error
	CountBlockingByEquipment(equipmentID int32) (int64, error)

	// FindConflicts returns every booking on equipmentID, in a blocking
	// status, whose [start,end] interval overlaps [from,to] (closed-closed).
	// excludeBookingID, when non-zero, omits that booking (for updates).
	FindConflicts(equipmentID int32, from, to time.Time, excludeBookingID int32) ([]*Booking, error)
}

package domain

import "time"

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "DRAFT"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectCancelled ProjectStatus = "CANCELLED"
)

// Project aggregates bookings for a client for rollup reporting; it does
// not own its bookings (removing a project clears the association instead
// of cascading the delete).
type Project struct {
	ID            int32             `json:"id"`
	Name          string            `json:"name"`
	ClientID      int32             `json:"clientId"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       time.Time         `json:"endDate"`
	Status        ProjectStatus     `json:"status"`
	PaymentStatus ProjectPaymentStatus `json:"paymentStatus"`
	Description   *string           `json:"description,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	DeletedAt     *time.Time        `json:"deletedAt,omitempty"`

	Client   *Client    `json:"client,omitempty"`
	Bookings []*Booking `json:"bookings,omitempty"`
}

// ProjectPaymentStatus is the project-level rollup derived from member
// booking payment statuses, distinct from Booking's own five-state
// PaymentStatus.
type ProjectPaymentStatus string

const (
	ProjectPaymentUnpaid         ProjectPaymentStatus = "UNPAID"
	ProjectPaymentPartiallyPaid  ProjectPaymentStatus = "PARTIALLY_PAID"
	ProjectPaymentPaid           ProjectPaymentStatus = "PAID"
)

// DeriveProjectPaymentStatus returns PAID iff every member booking is PAID,
// UNPAID iff every member booking is PENDING, PARTIALLY_PAID otherwise.
// A project with no bookings is UNPAID.
func DeriveProjectPaymentStatus(bookings []*Booking) ProjectPaymentStatus {
	if len(bookings) == 0 {
		return ProjectPaymentUnpaid
	}
	allPaid := true
	allPending := true
	for _, b := range bookings {
		if b.PaymentStatus != PaymentPaid {
			allPaid = false
		}
		if b.PaymentStatus != PaymentPending {
			allPending = false
		}
	}
	switch {
	case allPaid:
		return ProjectPaymentPaid
	case allPending:
		return ProjectPaymentUnpaid
	default:
		return ProjectPaymentPartiallyPaid
	}
}

type CreateProjectInput struct {
	Name        string
	ClientID    int32
	StartDate   time.Time
	EndDate     time.Time
	Description *string
	Notes       *string
}

type UpdateProjectInput struct {
	Name        *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *ProjectStatus
	Description *string
	Notes       *string
}

type ProjectFilter struct {
	ClientID       *int32
	Status         *ProjectStatus
	Query          *string
	IncludeDeleted bool
}

type ProjectRepository interface {
	Get(id int32, includeDeleted bool) (*Project, error)
	List(filter ProjectFilter, page Page) ([]*Project, int64, error)
	Create(project *Project) (*Project, error)
	Update(project *Project) (*Project, error)
	UpdatePaymentStatus(id int32, status ProjectPaymentStatus) error
	SoftDelete(id int32) error
}

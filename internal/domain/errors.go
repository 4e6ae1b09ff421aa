package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind discriminates the error taxonomy so the External Interface
// Adapter can do a total match instead of type-switching on concrete
// Go types or (worse) string matching a message.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindAvailability ErrorKind = "availability"
	KindState      ErrorKind = "state_transition"
	KindBusiness   ErrorKind = "business"
	KindPayment    ErrorKind = "payment"
	KindDocument   ErrorKind = "document"
	KindInternal   ErrorKind = "internal"
)

// Error is the single error type engines raise for every expected failure
// mode. Kind is the discriminator; Details carries whatever structured
// context a caller needs (resource ids, allowed transitions, offending
// field names) without resorting to isinstance-style dispatch.
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a bare error of the given kind.
func NewError(kind ErrorKind, message string, details map[string]any) *Error {
	if details == nil {
		details = map[string]any{}
	}
	return &Error{Kind: kind, Message: message, Details: details}
}

func NewValidationError(message string, details map[string]any) *Error {
	return NewError(KindValidation, message, details)
}

func NewNotFoundError(message string, details map[string]any) *Error {
	return NewError(KindNotFound, message, details)
}

func NewConflictError(message string, details map[string]any) *Error {
	return NewError(KindConflict, message, details)
}

// NewAvailabilityError carries the resource that could not be reserved and
// (when known) the id of the booking it conflicts with.
func NewAvailabilityError(message string, resourceID any, conflictingBookingID any) *Error {
	details := map[string]any{"resource_id": resourceID}
	if conflictingBookingID != nil {
		details["conflicting_booking_id"] = conflictingBookingID
	}
	return NewError(KindAvailability, message, details)
}

// NewStatusTransitionError carries the triple the adapter needs to explain
// why a transition was rejected: current status, attempted status, and the
// full set of statuses that were legal from the current one.
func NewStatusTransitionError(currentStatus, newStatus string, allowedTransitions []string) *Error {
	message := fmt.Sprintf("cannot transition from %s to %s", currentStatus, newStatus)
	if len(allowedTransitions) > 0 {
		message += fmt.Sprintf(". allowed transitions: %s", strings.Join(allowedTransitions, ", "))
	}
	return NewError(KindState, message, map[string]any{
		"current_status":      currentStatus,
		"new_status":          newStatus,
		"allowed_transitions": allowedTransitions,
	})
}

func NewBusinessError(message string, details map[string]any) *Error {
	return NewError(KindBusiness, message, details)
}

func NewPaymentError(message string, details map[string]any) *Error {
	return NewError(KindPayment, message, details)
}

func NewDocumentError(message string, details map[string]any) *Error {
	return NewError(KindDocument, message, details)
}

// AsDomainError unwraps err to a *Error, if any wraps one.
func AsDomainError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Sentinel wrapping helpers used by repositories, where a concrete *Error
// isn't yet warranted (e.g. simple not-found lookups before the service
// layer adds context).
var (
	ErrNotFound      = NewNotFoundError("resource not found", nil)
	ErrAlreadyExists = NewConflictError("resource already exists", nil)
)

// Validation constants shared across services.
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 2000
	MaxNotesLength       = 2000
	MaxSearchQueryLength = 255
	MaxBatchSize         = 100
)

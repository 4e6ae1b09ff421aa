package service

import (
	"time"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BookingService handles booking creation, availability-gated commits,
// batch cart checkout, and status-transition cascades into equipment
// status. Every mutating operation runs inside a single Gateway scope so
// the booking row and any equipment status flip commit or roll back
// together.
type BookingService struct {
	gateway      domain.Gateway
	availability *AvailabilityService
}

func NewBookingService(gateway domain.Gateway, availability *AvailabilityService) *BookingService {
	return &BookingService{gateway: gateway, availability: availability}
}

// CreateBooking validates, checks availability, and inserts the booking
// within one transactional scope. New bookings start BookingActive with
// PaymentPending (see DESIGN.md for the reasoning behind the default
// status choice).
func (s *BookingService) CreateBooking(input domain.CreateBookingInput) (*domain.Booking, error) {
	var result *domain.Booking
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		booking, err := s.createBookingTx(uow, input)
		if err != nil {
			return err
		}
		result = booking
		return nil
	})
	return result, err
}

func (s *BookingService) createBookingTx(uow domain.UnitOfWork, input domain.CreateBookingInput) (*domain.Booking, error) {
	if !input.StartDate.Before(input.EndDate) {
		return nil, domain.NewValidationError("start date must be before end date", map[string]any{
			"start_date": input.StartDate, "end_date": input.EndDate,
		})
	}
	if input.Quantity < 1 {
		return nil, domain.NewValidationError("quantity must be at least 1", map[string]any{"quantity": input.Quantity})
	}
	if input.TotalAmount.LessThan(decimal.Zero) {
		return nil, domain.NewValidationError("total amount must be non-negative", map[string]any{"total_amount": input.TotalAmount})
	}

	equipment, err := uow.Equipment().Get(input.EquipmentID, false)
	if err != nil {
		return nil, err
	}
	if _, err := uow.Clients().Get(input.ClientID, false); err != nil {
		return nil, err
	}
	if input.ProjectID != nil {
		if _, err := uow.Projects().Get(*input.ProjectID, false); err != nil {
			return nil, err
		}
	}

	available, err := s.availability.Check(uow.Bookings(), equipment, input.StartDate, input.EndDate, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		conflicts, err := uow.Bookings().FindConflicts(input.EquipmentID, input.StartDate, input.EndDate, 0)
		if err != nil {
			return nil, err
		}
		var conflictingID any
		if len(conflicts) > 0 {
			conflictingID = conflicts[0].ID
		}
		return nil, domain.NewAvailabilityError("equipment is not available for the requested window", input.EquipmentID, conflictingID)
	}

	deposit := input.TotalAmount.Mul(domain.DefaultDepositRate)
	if input.DepositAmount != nil {
		deposit = *input.DepositAmount
	}

	booking := &domain.Booking{
		ClientID:      input.ClientID,
		EquipmentID:   input.EquipmentID,
		ProjectID:     input.ProjectID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Quantity:      input.Quantity,
		TotalAmount:   input.TotalAmount,
		DepositAmount: deposit,
		BookingStatus: domain.BookingActive,
		PaymentStatus: domain.PaymentPending,
		Notes:         input.Notes,
	}

	created, err := uow.Bookings().Create(booking)
	if err != nil {
		return nil, err
	}

	if _, err := uow.Equipment().UpdateStatus(equipment.ID, domain.EquipmentRented); err != nil {
		return nil, err
	}

	return created, nil
}

// BatchCreateBookings attempts each item in input order within one
// transactional scope, committing every success even when some items
// fail, and hard-failing only when nothing succeeded at all.
func (s *BookingService) BatchCreateBookings(items []domain.CreateBookingInput, projectID *int32) (*domain.BatchCreateResult, error) {
	if len(items) == 0 {
		return nil, domain.NewValidationError("batch must not be empty", nil)
	}
	if len(items) > domain.MaxBatchSize {
		return nil, domain.NewValidationError("batch exceeds maximum size", map[string]any{"max_batch_size": domain.MaxBatchSize})
	}

	result := &domain.BatchCreateResult{}
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		for _, item := range items {
			item.ProjectID = projectID
			created, err := s.createBookingTx(uow, item)
			if err != nil {
				kind := domain.KindInternal
				message := err.Error()
				if de, ok := domain.AsDomainError(err); ok {
					kind = de.Kind
					message = de.Message
				}
				result.Failed = append(result.Failed, domain.BatchCreateFailure{
					EquipmentID: item.EquipmentID,
					Kind:        kind,
					Message:     message,
				})
				continue
			}
			result.Created = append(result.Created, created)
		}

		if len(result.Created) == 0 {
			return domain.NewValidationError("no bookings could be created", map[string]any{"failed": result.Failed})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateBooking re-validates the window and availability (excluding the
// booking's own current reservation) before applying the patch.
func (s *BookingService) UpdateBooking(id int32, input domain.UpdateBookingInput) (*domain.Booking, error) {
	var result *domain.Booking
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		booking, err := uow.Bookings().Get(id)
		if err != nil {
			return err
		}

		startDate := booking.StartDate
		if input.StartDate != nil {
			startDate = *input.StartDate
		}
		endDate := booking.EndDate
		if input.EndDate != nil {
			endDate = *input.EndDate
		}
		if !startDate.Before(endDate) {
			return domain.NewValidationError("start date must be before end date", map[string]any{
				"start_date": startDate, "end_date": endDate,
			})
		}

		equipment, err := uow.Equipment().Get(booking.EquipmentID, false)
		if err != nil {
			return err
		}
		available, err := s.availability.Check(uow.Bookings(), equipment, startDate, endDate, booking.ID)
		if err != nil {
			return err
		}
		if !available {
			conflicts, err := uow.Bookings().FindConflicts(booking.EquipmentID, startDate, endDate, booking.ID)
			if err != nil {
				return err
			}
			var conflictingID any
			if len(conflicts) > 0 {
				conflictingID = conflicts[0].ID
			}
			return domain.NewAvailabilityError("equipment is not available for the requested window", booking.EquipmentID, conflictingID)
		}

		booking.StartDate = startDate
		booking.EndDate = endDate
		if input.Quantity != nil {
			if *input.Quantity < 1 {
				return domain.NewValidationError("quantity must be at least 1", map[string]any{"quantity": *input.Quantity})
			}
			booking.Quantity = *input.Quantity
		}
		if input.TotalAmount != nil {
			booking.TotalAmount = *input.TotalAmount
		}
		if input.DepositAmount != nil {
			booking.DepositAmount = *input.DepositAmount
		}
		if input.Notes != nil {
			booking.Notes = input.Notes
		}

		updated, err := uow.Bookings().Update(booking)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// TransitionStatus validates the booking state machine and cascades into
// equipment status: activating rents the equipment, completing or
// cancelling returns it to AVAILABLE only if no other blocking booking
// remains on it.
func (s *BookingService) TransitionStatus(id int32, newStatus domain.BookingStatus) (*domain.Booking, error) {
	var result *domain.Booking
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		booking, err := uow.Bookings().Get(id)
		if err != nil {
			return err
		}

		if !domain.CanTransitionBooking(booking.BookingStatus, newStatus) {
			allowed := domain.BookingStatusTransitions[booking.BookingStatus]
			allowedStrs := make([]string, len(allowed))
			for i, a := range allowed {
				allowedStrs[i] = string(a)
			}
			return domain.NewStatusTransitionError(string(booking.BookingStatus), string(newStatus), allowedStrs)
		}

		updated, err := uow.Bookings().UpdateStatus(id, newStatus)
		if err != nil {
			return err
		}

		switch newStatus {
		case domain.BookingActive:
			if _, err := uow.Equipment().UpdateStatus(booking.EquipmentID, domain.EquipmentRented); err != nil {
				return err
			}
		case domain.BookingCompleted, domain.BookingCancelled:
			remaining, err := uow.Bookings().CountBlockingByEquipment(booking.EquipmentID)
			if err != nil {
				return err
			}
			if remaining == 0 {
				equipment, err := uow.Equipment().Get(booking.EquipmentID, false)
				if err != nil {
					return err
				}
				if equipment.Status == domain.EquipmentRented {
					if _, err := uow.Equipment().UpdateStatus(booking.EquipmentID, domain.EquipmentAvailable); err != nil {
						return err
					}
				}
			}
		}

		result = updated
		return nil
	})
	return result, err
}

// TransitionPaymentStatus validates against the payment state machine and,
// when the booking belongs to a project, recomputes the project's rollup.
func (s *BookingService) TransitionPaymentStatus(id int32, newStatus domain.PaymentStatus) (*domain.Booking, error) {
	var result *domain.Booking
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		booking, err := uow.Bookings().Get(id)
		if err != nil {
			return err
		}

		if !domain.CanTransitionPayment(booking.PaymentStatus, newStatus) {
			allowed := domain.PaymentStatusTransitions[booking.PaymentStatus]
			allowedStrs := make([]string, len(allowed))
			for i, a := range allowed {
				allowedStrs[i] = string(a)
			}
			return domain.NewStatusTransitionError(string(booking.PaymentStatus), string(newStatus), allowedStrs)
		}

		updated, err := uow.Bookings().UpdatePaymentStatus(id, newStatus)
		if err != nil {
			return err
		}

		if updated.ProjectID != nil {
			if err := recomputeProjectPaymentStatus(uow, *updated.ProjectID); err != nil {
				return err
			}
		}

		result = updated
		return nil
	})
	return result, err
}

func (s *BookingService) GetBooking(id int32) (*domain.Booking, error) {
	var result *domain.Booking
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		b, err := uow.Bookings().Get(id)
		if err != nil {
			return err
		}
		result = b
		return nil
	})
	return result, err
}

func (s *BookingService) ListBookings(filter domain.BookingFilter, page domain.Page) ([]*domain.Booking, int64, error) {
	var items []*domain.Booking
	var total int64
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		var err error
		items, total, err = uow.Bookings().List(filter, page)
		return err
	})
	return items, total, err
}

func (s *BookingService) GetEquipmentAvailability(equipmentID int32, from, to time.Time) (bool, domain.EquipmentStatus, []domain.BookingRef, error) {
	var available bool
	var status domain.EquipmentStatus
	var conflicts []domain.BookingRef
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		equipment, err := uow.Equipment().Get(equipmentID, false)
		if err != nil {
			return err
		}
		status = equipment.Status

		ok, err := s.availability.Check(uow.Bookings(), equipment, from, to, 0)
		if err != nil {
			return err
		}
		available = ok

		refs, err := s.availability.ConflictsFor(uow.Bookings(), equipmentID, from, to, 0)
		if err != nil {
			return err
		}
		conflicts = refs
		return nil
	})
	return available, status, conflicts, err
}

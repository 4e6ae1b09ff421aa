package service

import (
	"strings"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// EquipmentService handles equipment CRUD, barcode regeneration, and the
// status state machine with its booking-only RENTED guard.
type EquipmentService struct {
	gateway domain.Gateway
}

func NewEquipmentService(gateway domain.Gateway) *EquipmentService {
	return &EquipmentService{gateway: gateway}
}

type CreateEquipmentInput struct {
	Name            string
	Description     *string
	SerialNumber    *string
	CategoryID      int32
	ReplacementCost decimal.Decimal
	Notes           *string
	CustomBarcode   *string
}

var maxReplacementCost = decimal.NewFromInt(100_000_000)

func (s *EquipmentService) CreateEquipment(input CreateEquipmentInput) (*domain.Equipment, error) {
	var result *domain.Equipment
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return domain.NewValidationError("equipment name is required", nil)
		}
		if input.ReplacementCost.LessThan(decimal.Zero) || input.ReplacementCost.GreaterThanOrEqual(maxReplacementCost) {
			return domain.NewValidationError("replacement cost out of range", map[string]any{"replacement_cost": input.ReplacementCost})
		}
		if _, err := uow.Categories().Get(input.CategoryID); err != nil {
			return err
		}

		barcode := ""
		if input.CustomBarcode != nil {
			if !domain.ValidateBarcodeFormat(*input.CustomBarcode) {
				return domain.NewValidationError("custom barcode has an invalid format", map[string]any{"barcode": *input.CustomBarcode})
			}
			if _, err := uow.Equipment().GetByBarcode(*input.CustomBarcode); err == nil {
				return domain.NewConflictError("barcode already in use", map[string]any{"barcode": *input.CustomBarcode})
			}
			barcode = *input.CustomBarcode
		} else {
			composed, err := allocateBarcode(uow, &input.CategoryID)
			if err != nil {
				return err
			}
			barcode = composed
		}

		created, err := uow.Equipment().Create(&domain.Equipment{
			Name:            name,
			Description:     input.Description,
			SerialNumber:    input.SerialNumber,
			Barcode:         barcode,
			CategoryID:      input.CategoryID,
			Status:          domain.EquipmentAvailable,
			ReplacementCost: input.ReplacementCost,
			Notes:           input.Notes,
		})
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	return result, err
}

type UpdateEquipmentInput struct {
	Name            *string
	Description     *string
	SerialNumber    *string
	CategoryID      *int32
	ReplacementCost *decimal.Decimal
	Notes           *string
}

func (s *EquipmentService) UpdateEquipment(id int32, input UpdateEquipmentInput) (*domain.Equipment, error) {
	var result *domain.Equipment
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		equipment, err := uow.Equipment().Get(id, false)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domain.NewValidationError("equipment name is required", nil)
			}
			equipment.Name = name
		}
		if input.Description != nil {
			equipment.Description = input.Description
		}
		if input.SerialNumber != nil {
			equipment.SerialNumber = input.SerialNumber
		}
		if input.CategoryID != nil {
			if _, err := uow.Categories().Get(*input.CategoryID); err != nil {
				return err
			}
			equipment.CategoryID = *input.CategoryID
		}
		if input.ReplacementCost != nil {
			if input.ReplacementCost.LessThan(decimal.Zero) || input.ReplacementCost.GreaterThanOrEqual(maxReplacementCost) {
				return domain.NewValidationError("replacement cost out of range", map[string]any{"replacement_cost": *input.ReplacementCost})
			}
			equipment.ReplacementCost = *input.ReplacementCost
		}
		if input.Notes != nil {
			equipment.Notes = input.Notes
		}

		updated, err := uow.Equipment().Update(equipment)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// RegenerateBarcode allocates a fresh barcode (via the subcategory prefix
// for the equipment's current category, if any) and replaces the existing
// one. The original barcode is immutable except through this explicit path.
func (s *EquipmentService) RegenerateBarcode(id int32) (*domain.Equipment, error) {
	var result *domain.Equipment
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		equipment, err := uow.Equipment().Get(id, false)
		if err != nil {
			return err
		}

		barcode, err := allocateBarcode(uow, &equipment.CategoryID)
		if err != nil {
			return err
		}

		updated, err := uow.Equipment().UpdateBarcode(id, barcode)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// TransitionStatus enforces the equipment state machine and its
// booking-only RENTED guard: external callers can never request RENTED
// directly, only the Booking engine reaches it.
func (s *EquipmentService) TransitionStatus(id int32, newStatus domain.EquipmentStatus) (*domain.Equipment, error) {
	if newStatus == domain.EquipmentRented {
		return nil, domain.NewValidationError("RENTED can only be set by activating a booking", map[string]any{"equipment_id": id})
	}

	var result *domain.Equipment
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		equipment, err := uow.Equipment().Get(id, false)
		if err != nil {
			return err
		}

		if !domain.CanTransitionEquipment(equipment.Status, newStatus) {
			allowed := domain.EquipmentStatusTransitions[equipment.Status]
			allowedStrs := make([]string, len(allowed))
			for i, a := range allowed {
				allowedStrs[i] = string(a)
			}
			return domain.NewStatusTransitionError(string(equipment.Status), string(newStatus), allowedStrs)
		}

		updated, err := uow.Equipment().UpdateStatus(id, newStatus)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// DeleteEquipment refuses when any blocking booking still references it.
func (s *EquipmentService) DeleteEquipment(id int32) error {
	return s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		if _, err := uow.Equipment().Get(id, false); err != nil {
			return err
		}

		count, err := uow.Bookings().CountBlockingByEquipment(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.NewBusinessError("cannot delete equipment with active bookings", map[string]any{
				"equipment_id":  id,
				"booking_count": count,
			})
		}

		return uow.Equipment().SoftDelete(id)
	})
}

func (s *EquipmentService) GetEquipment(id int32, includeDeleted bool) (*domain.Equipment, error) {
	var result *domain.Equipment
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		equipment, err := uow.Equipment().Get(id, includeDeleted)
		if err != nil {
			return err
		}
		if category, err := uow.Categories().Get(equipment.CategoryID); err == nil {
			equipment.Category = category
		}
		result = equipment
		return nil
	})
	return result, err
}

func (s *EquipmentService) GetByBarcode(barcode string) (*domain.Equipment, error) {
	var result *domain.Equipment
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		equipment, err := uow.Equipment().GetByBarcode(barcode)
		if err != nil {
			return err
		}
		result = equipment
		return nil
	})
	return result, err
}

func (s *EquipmentService) ListEquipment(filter domain.EquipmentFilter, page domain.Page) ([]*domain.Equipment, int64, error) {
	var items []*domain.Equipment
	var total int64
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		var err error
		items, total, err = uow.Equipment().List(filter, page)
		return err
	})
	return items, total, err
}

func (s *EquipmentService) SearchEquipment(query string, page domain.Page) ([]*domain.Equipment, int64, error) {
	if len(query) > domain.MaxSearchQueryLength {
		return nil, 0, domain.NewValidationError("search query too long", map[string]any{"max_length": domain.MaxSearchQueryLength})
	}
	var items []*domain.Equipment
	var total int64
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		var err error
		items, total, err = uow.Equipment().Search(query, page)
		return err
	})
	return items, total, err
}

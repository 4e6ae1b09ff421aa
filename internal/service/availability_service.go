package service

import (
	"time"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

// AvailabilityService implements the closed-closed interval overlap
// predicate against a UnitOfWork's BookingRepository.
type AvailabilityService struct{}

func NewAvailabilityService() *AvailabilityService {
	return &AvailabilityService{}
}

// Overlap is the shared predicate: a_start <= b_end AND b_start <= a_end.
func Overlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// Check reports whether equipmentID is free for [from, to], considering
// both blocking-booking conflicts and the unit's own status. excludeID,
// when non-zero, ignores that booking (used by updateBooking).
func (s *AvailabilityService) Check(bookings domain.BookingRepository, equipment *domain.Equipment, from, to time.Time, excludeID int32) (bool, error) {
	if !from.Before(to) {
		return false, domain.NewValidationError("start date must be before end date", map[string]any{"from": from, "to": to})
	}

	conflicts, err := bookings.FindConflicts(equipment.ID, from, to, excludeID)
	if err != nil {
		return false, err
	}

	return len(conflicts) == 0 && equipment.Status == domain.EquipmentAvailable, nil
}

// ConflictsFor returns the thin BookingRef projection for every blocking
// booking overlapping [from, to] on equipmentID.
func (s *AvailabilityService) ConflictsFor(bookings domain.BookingRepository, equipmentID int32, from, to time.Time, excludeID int32) ([]domain.BookingRef, error) {
	conflicting, err := bookings.FindConflicts(equipmentID, from, to, excludeID)
	if err != nil {
		return nil, err
	}

	refs := make([]domain.BookingRef, 0, len(conflicting))
	for _, b := range conflicting {
		ref := domain.BookingRef{
			ID:            b.ID,
			StartDate:     b.StartDate,
			EndDate:       b.EndDate,
			BookingStatus: b.BookingStatus,
			ProjectID:     b.ProjectID,
		}
		if b.Project != nil {
			ref.ProjectName = &b.Project.Name
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

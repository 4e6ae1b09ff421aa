package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquipmentStatus is the lifecycle state of a physical rentable unit.
type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentRented      EquipmentStatus = "RENTED"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentBroken      EquipmentStatus = "BROKEN"
	EquipmentRetired     EquipmentStatus = "RETIRED"
)

// EquipmentStatusTransitions is the allowed-transition table for equipment
// status. RENTED is reachable only through the booking-only path, enforced
// by the service layer (external callers are never allowed to request it
// directly), not by this table -- the table only says what states exist
// downstream of each state.
var EquipmentStatusTransitions = map[EquipmentStatus][]EquipmentStatus{
	EquipmentAvailable:   {EquipmentRented, EquipmentMaintenance, EquipmentBroken, EquipmentRetired},
	EquipmentRented:      {EquipmentAvailable, EquipmentBroken},
	EquipmentMaintenance: {EquipmentAvailable, EquipmentBroken, EquipmentRetired},
	EquipmentBroken:      {EquipmentMaintenance, EquipmentRetired},
	EquipmentRetired:     {},
}

// CanTransitionEquipment reports whether from -> to is a legal transition.
func CanTransitionEquipment(from, to EquipmentStatus) bool {
	for _, allowed := range EquipmentStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Equipment is one physical, barcode-tracked rentable unit.
type Equipment struct {
	ID                int32           `json:"id"`
	Name              string          `json:"name"`
	Description       *string         `json:"description,omitempty"`
	SerialNumber      *string         `json:"serialNumber,omitempty"`
	Barcode           string          `json:"barcode"`
	CategoryID        int32           `json:"categoryId"`
	Status            EquipmentStatus `json:"status"`
	ReplacementCost   decimal.Decimal `json:"replacementCost"`
	Notes             *string         `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	DeletedAt         *time.Time      `json:"deletedAt,omitempty"`

	// Eagerly-resolved nested data, populated by the repository (no lazy
	// attribute access at read time).
	Category *Category `json:"category,omitempty"`
}

// EquipmentFilter is the predicate set for GET /equipment.
type EquipmentFilter struct {
	Status          *EquipmentStatus
	CategoryID      *int32
	IncludeChildren bool // when CategoryID set, also match descendant categories
	Query           *string
	AvailableFrom   *time.Time
	AvailableTo     *time.Time
	IncludeDeleted  bool
}

type EquipmentRepository interface {
	Get(id int32, includeDeleted bool) (*Equipment, error)
	GetMany(ids []int32) ([]*Equipment, error)
	GetByBarcode(barcode string) (*Equipment, error)
	GetByCategory(categoryID int32, includeDeleted bool) ([]*Equipment, error)
	List(filter EquipmentFilter, page Page) ([]*Equipment, int64, error)
	Search(query string, page Page) ([]*Equipment, int64, error)
	Create(equipment *Equipment) (*Equipment, error)
	Update(equipment *Equipment) (*Equipment, error)
	UpdateStatus(id int32, status EquipmentStatus) (*Equipment, error)
	UpdateBarcode(id int32, barcode string) (*Equipment, error)
	SoftDelete(id int32) error
}

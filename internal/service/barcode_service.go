package service

import (
	"github.com/newalexoa/cinerental-backend/internal/domain"
)

// BarcodeService wraps the pure domain.ComposeBarcode/ParseBarcode
// algorithms with sequence allocation and category prefix lookup.
type BarcodeService struct {
	gateway domain.Gateway
	repo    domain.BarcodeRepository
}

// NewBarcodeService takes both the gateway (for the transactional
// allocate path) and a standalone repo (for the non-transactional peek).
func NewBarcodeService(gateway domain.Gateway, repo domain.BarcodeRepository) *BarcodeService {
	return &BarcodeService{gateway: gateway, repo: repo}
}

// GenerateBarcode atomically allocates the next sequence number and
// composes it into a full checked barcode, optionally overriding the
// prefix with a category's subcategory_prefix override.
func (s *BarcodeService) GenerateBarcode(categoryID *int32) (string, error) {
	var barcode string
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		composed, err := allocateBarcode(uow, categoryID)
		if err != nil {
			return err
		}
		barcode = composed
		return nil
	})
	return barcode, err
}

// allocateBarcode is the shared sequence-allocate-then-compose step used
// both by BarcodeService.GenerateBarcode and directly by EquipmentService,
// which already holds an open UnitOfWork and would otherwise need to
// nest transactional scopes to reuse it.
func allocateBarcode(uow domain.UnitOfWork, categoryID *int32) (string, error) {
	sequence, err := uow.Barcodes().NextSequence()
	if err != nil {
		return "", err
	}

	prefix := ""
	if categoryID != nil {
		sp, err := uow.Barcodes().GetSubcategoryPrefix(*categoryID)
		if err != nil {
			return "", err
		}
		if sp != nil {
			prefix = sp.Prefix
		}
	}

	composed, err := domain.ComposeBarcode(sequence, prefix)
	if err != nil {
		return "", domain.NewValidationError(err.Error(), nil)
	}
	return composed, nil
}

// ValidateBarcodeFormat reports whether s has the right shape (11 digits)
// without checking the checksum -- the cheap first pass the router uses
// before attempting a full parse.
func (s *BarcodeService) ValidateBarcodeFormat(barcode string) bool {
	return domain.ValidateBarcodeFormat(barcode)
}

// ParseBarcode validates format and checksum together, returning the
// embedded sequence number.
func (s *BarcodeService) ParseBarcode(barcode string) (int64, error) {
	return domain.ParseBarcode(barcode)
}

// GetNextSequenceNumber peeks at the counter without allocating it.
func (s *BarcodeService) GetNextSequenceNumber() (int64, error) {
	last, err := s.repo.PeekSequence()
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

package service

import (
	"regexp"
	"strings"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

var subcategoryPrefixAlnumRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// SubcategoryPrefixService manages the per-category barcode-prefix
// overrides consumed by BarcodeService.GenerateBarcode, separately from
// the hot allocate-time read path.
type SubcategoryPrefixService struct {
	gateway domain.Gateway
	repo    domain.BarcodeRepository
}

func NewSubcategoryPrefixService(gateway domain.Gateway, repo domain.BarcodeRepository) *SubcategoryPrefixService {
	return &SubcategoryPrefixService{gateway: gateway, repo: repo}
}

type CreateSubcategoryPrefixInput struct {
	CategoryID  int32
	Name        string
	Prefix      string
	Description *string
}

// CreateSubcategoryPrefix validates the prefix shape and rejects a second
// override for a category that already has one.
func (s *SubcategoryPrefixService) CreateSubcategoryPrefix(input CreateSubcategoryPrefixInput) (*domain.SubcategoryPrefix, error) {
	var result *domain.SubcategoryPrefix
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return domain.NewValidationError("subcategory prefix name is required", nil)
		}

		prefix, err := normalizeSubcategoryPrefix(input.Prefix)
		if err != nil {
			return err
		}

		if _, err := uow.Categories().Get(input.CategoryID); err != nil {
			return err
		}

		existing, err := uow.Barcodes().GetSubcategoryPrefix(input.CategoryID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewConflictError("category already has a subcategory prefix", map[string]any{
				"category_id": input.CategoryID,
			})
		}

		created, err := uow.Barcodes().CreateSubcategoryPrefix(&domain.SubcategoryPrefix{
			CategoryID:  input.CategoryID,
			Name:        name,
			Prefix:      prefix,
			Description: input.Description,
		})
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	return result, err
}

func (s *SubcategoryPrefixService) GetSubcategoryPrefix(id int32) (*domain.SubcategoryPrefix, error) {
	return s.repo.GetSubcategoryPrefixByID(id)
}

// ListSubcategoryPrefixes supports the original's category_id and query
// filters, either of which may be empty/nil for an unfiltered listing.
func (s *SubcategoryPrefixService) ListSubcategoryPrefixes(filter domain.SubcategoryPrefixFilter) ([]*domain.SubcategoryPrefix, error) {
	return s.repo.ListSubcategoryPrefixes(filter)
}

type UpdateSubcategoryPrefixInput struct {
	Name        *string
	Prefix      *string
	Description *string
}

func (s *SubcategoryPrefixService) UpdateSubcategoryPrefix(id int32, input UpdateSubcategoryPrefixInput) (*domain.SubcategoryPrefix, error) {
	var result *domain.SubcategoryPrefix
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		existing, err := uow.Barcodes().GetSubcategoryPrefixByID(id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domain.NewValidationError("subcategory prefix name is required", nil)
			}
			existing.Name = name
		}
		if input.Prefix != nil {
			prefix, err := normalizeSubcategoryPrefix(*input.Prefix)
			if err != nil {
				return err
			}
			existing.Prefix = prefix
		}
		if input.Description != nil {
			existing.Description = input.Description
		}

		updated, err := uow.Barcodes().UpdateSubcategoryPrefix(existing)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

func (s *SubcategoryPrefixService) DeleteSubcategoryPrefix(id int32) error {
	return s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		if _, err := uow.Barcodes().GetSubcategoryPrefixByID(id); err != nil {
			return err
		}
		return uow.Barcodes().DeleteSubcategoryPrefix(id)
	})
}

// normalizeSubcategoryPrefix enforces the original's fixed-width,
// alphanumeric, upper-cased prefix shape.
func normalizeSubcategoryPrefix(raw string) (string, error) {
	if len(raw) != domain.SubcategoryPrefixLength {
		return "", domain.NewValidationError("subcategory prefix must be exactly 2 characters", map[string]any{
			"length": domain.SubcategoryPrefixLength,
		})
	}
	if !subcategoryPrefixAlnumRe.MatchString(raw) {
		return "", domain.NewValidationError("subcategory prefix must contain only alphanumeric characters", nil)
	}
	return strings.ToUpper(raw), nil
}

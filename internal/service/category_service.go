package service

import (
	"context"
	"strings"

	"github.com/newalexoa/cinerental-backend/internal/cache"
	"github.com/newalexoa/cinerental-backend/internal/domain"
)

// CategoryService manages the equipment classification tree: CRUD with
// cycle prevention, descendant traversal, and the root-to-node path used
// by both sorting and the print overview fallback rule.
type CategoryService struct {
	repo          domain.CategoryRepository
	equipmentRepo domain.EquipmentRepository
	// hierarchyCache is optional: a nil cache behaves exactly like an
	// always-miss cache, so GetPrintHierarchyAndSortPath always has a
	// correct (if uncached) path.
	hierarchyCache *cache.CategoryCache
}

func NewCategoryService(repo domain.CategoryRepository, equipmentRepo domain.EquipmentRepository) *CategoryService {
	return &CategoryService{repo: repo, equipmentRepo: equipmentRepo}
}

// WithHierarchyCache attaches a Redis-backed cache for the print-hierarchy
// derivation. Optional: call only when a cache client is configured.
func (s *CategoryService) WithHierarchyCache(c *cache.CategoryCache) *CategoryService {
	s.hierarchyCache = c
	return s
}

type CreateCategoryInput struct {
	Name                string
	Description         *string
	ParentID            *int32
	ShowInPrintOverview *bool
}

// CreateCategory enforces name uniqueness and parent existence before
// inserting. ShowInPrintOverview defaults to true when omitted.
func (s *CategoryService) CreateCategory(input CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("category name is required", nil)
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.NewValidationError("category name too long", map[string]any{"max_length": domain.MaxNameLength})
	}

	if existing, err := s.repo.GetByName(name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.NewConflictError("category with this name already exists", map[string]any{"name": name})
	}

	if input.ParentID != nil {
		if _, err := s.repo.Get(*input.ParentID); err != nil {
			return nil, err
		}
	}

	showInPrintOverview := true
	if input.ShowInPrintOverview != nil {
		showInPrintOverview = *input.ShowInPrintOverview
	}

	created, err := s.repo.Create(&domain.Category{
		Name:                name,
		Description:         input.Description,
		ParentID:            input.ParentID,
		ShowInPrintOverview: showInPrintOverview,
	})
	if err != nil {
		return nil, err
	}
	s.hierarchyCache.InvalidateAll(context.Background())
	return created, nil
}

type UpdateCategoryInput struct {
	Name                *string
	Description         *string
	ParentID            *int32
	ClearParent         bool
	ShowInPrintOverview *bool
}

// UpdateCategory guards against a category becoming its own parent and,
// transitively, against introducing a cycle anywhere in the new parent's
// ancestry chain.
func (s *CategoryService) UpdateCategory(categoryID int32, input UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.repo.Get(categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError("category name is required", nil)
		}
		if name != category.Name {
			if existing, err := s.repo.GetByName(name); err != nil {
				return nil, err
			} else if existing != nil {
				return nil, domain.NewConflictError("category with this name already exists", map[string]any{"name": name})
			}
		}
		category.Name = name
	}

	if input.Description != nil {
		category.Description = input.Description
	}

	if input.ClearParent {
		category.ParentID = nil
	} else if input.ParentID != nil {
		if *input.ParentID == categoryID {
			return nil, domain.NewValidationError("category cannot be its own parent", map[string]any{"category_id": categoryID})
		}
		if _, err := s.repo.Get(*input.ParentID); err != nil {
			return nil, err
		}
		if err := s.guardAgainstCycle(categoryID, *input.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = input.ParentID
	}

	if input.ShowInPrintOverview != nil {
		category.ShowInPrintOverview = *input.ShowInPrintOverview
	}

	updated, err := s.repo.Update(category)
	if err != nil {
		return nil, err
	}
	s.hierarchyCache.InvalidateAll(context.Background())
	return updated, nil
}

// guardAgainstCycle walks candidateParentID's ancestry chain and rejects
// the reparent if categoryID appears in it -- that would make categoryID
// an ancestor of its own new parent.
func (s *CategoryService) guardAgainstCycle(categoryID, candidateParentID int32) error {
	path, err := s.repo.GetCategoryPathFromRoot(candidateParentID)
	if err != nil {
		return err
	}
	for _, row := range path {
		if row.ID == categoryID {
			return domain.NewValidationError("this reparent would create a cycle in the category tree", map[string]any{
				"category_id": categoryID,
				"parent_id":   candidateParentID,
			})
		}
	}
	return nil
}

func (s *CategoryService) GetCategory(id int32) (*domain.Category, error) {
	return s.repo.Get(id)
}

func (s *CategoryService) ListCategories(parentID *int32, page domain.Page) ([]*domain.Category, int64, error) {
	return s.repo.GetAll(parentID, page)
}

func (s *CategoryService) SearchCategories(query string) ([]*domain.Category, error) {
	return s.repo.Search(query)
}

func (s *CategoryService) GetWithEquipmentCount() ([]*domain.Category, error) {
	return s.repo.GetAllWithEquipmentCount()
}

func (s *CategoryService) GetChildren(categoryID int32) ([]*domain.Category, error) {
	if _, err := s.repo.Get(categoryID); err != nil {
		return nil, err
	}
	return s.repo.GetChildren(categoryID)
}

// GetAllDescendantIDs recursively collects categoryID plus every
// transitive child, via breadth-first traversal over GetChildren.
func (s *CategoryService) GetAllDescendantIDs(categoryID int32) ([]int32, error) {
	if _, err := s.repo.Get(categoryID); err != nil {
		return nil, err
	}

	ids := []int32{categoryID}
	queue := []int32{categoryID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := s.repo.GetChildren(current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return ids, nil
}

// DeleteCategory refuses to delete a category with non-deleted equipment
// directly filed under it, or with any subcategories -- categories with
// either cannot be removed outright.
func (s *CategoryService) DeleteCategory(categoryID int32) error {
	if _, err := s.repo.Get(categoryID); err != nil {
		return err
	}

	count, err := s.repo.CountNonDeletedEquipment(categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewBusinessError("cannot delete category with associated equipment", map[string]any{
			"category_id":     categoryID,
			"equipment_count": count,
		})
	}

	children, err := s.repo.GetChildren(categoryID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return domain.NewBusinessError("cannot delete category with subcategories", map[string]any{
			"category_id":       categoryID,
			"subcategory_count": len(children),
		})
	}

	if err := s.repo.SoftDelete(categoryID); err != nil {
		return err
	}
	s.hierarchyCache.InvalidateAll(context.Background())
	return nil
}

// GetPrintHierarchyAndSortPath derives both the sort path and the
// printable breakdown for a category: sortPath is the full root-to-node
// id chain; printables only include
// ancestors (and the node itself) flagged ShowInPrintOverview=true,
// re-leveled starting at 1 -- except when nothing in the chain qualifies,
// in which case the root alone is used at level 1.
func (s *CategoryService) GetPrintHierarchyAndSortPath(categoryID *int32) ([]int32, []domain.PrintableCategory, error) {
	if categoryID == nil {
		return nil, nil, nil
	}

	ctx := context.Background()
	if sortPath, hierarchy, ok := s.hierarchyCache.GetHierarchy(ctx, *categoryID); ok {
		return sortPath, hierarchy, nil
	}

	sortPath, hierarchy, err := s.computePrintHierarchyAndSortPath(*categoryID)
	if err != nil {
		return nil, nil, err
	}
	s.hierarchyCache.SetHierarchy(ctx, *categoryID, sortPath, hierarchy)
	return sortPath, hierarchy, nil
}

func (s *CategoryService) computePrintHierarchyAndSortPath(categoryID int32) ([]int32, []domain.PrintableCategory, error) {
	fullPath, err := s.repo.GetCategoryPathFromRoot(categoryID)
	if err != nil {
		return nil, nil, err
	}

	if len(fullPath) == 0 {
		direct, err := s.repo.Get(categoryID)
		if err != nil {
			return nil, nil, err
		}
		if direct.ShowInPrintOverview {
			return []int32{direct.ID}, []domain.PrintableCategory{{ID: direct.ID, Name: direct.Name, Level: 1}}, nil
		}
		return nil, nil, nil
	}

	sortPath := make([]int32, len(fullPath))
	for i, row := range fullPath {
		sortPath[i] = row.ID
	}

	var printables []domain.PrintableCategory
	level := 1
	for _, row := range fullPath {
		if row.ShowInPrintOverview {
			printables = append(printables, domain.PrintableCategory{ID: row.ID, Name: row.Name, Level: level})
			level++
		}
	}

	if len(printables) == 0 {
		root := fullPath[0]
		printables = []domain.PrintableCategory{{ID: root.ID, Name: root.Name, Level: 1}}
	}

	return sortPath, printables, nil
}

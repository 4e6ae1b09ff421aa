package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/service"
)

// CategoryHandler handles category-hierarchy HTTP requests.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type CreateCategoryRequest struct {
	Name                string  `json:"name"`
	Description         *string `json:"description,omitempty"`
	ParentID            *int32  `json:"parentId,omitempty"`
	ShowInPrintOverview *bool   `json:"showInPrintOverview,omitempty"`
}

type UpdateCategoryRequest struct {
	Name                *string `json:"name,omitempty"`
	Description         *string `json:"description,omitempty"`
	ParentID            *int32  `json:"parentId,omitempty"`
	ClearParent         bool    `json:"clearParent,omitempty"`
	ShowInPrintOverview *bool   `json:"showInPrintOverview,omitempty"`
}

type CategoryResponse struct {
	ID                  int32   `json:"id"`
	Name                string  `json:"name"`
	Description         *string `json:"description,omitempty"`
	ParentID            *int32  `json:"parentId,omitempty"`
	ShowInPrintOverview bool    `json:"showInPrintOverview"`
	EquipmentCount      int64   `json:"equipmentCount,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

func toCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:                  cat.ID,
		Name:                cat.Name,
		Description:         cat.Description,
		ParentID:            cat.ParentID,
		ShowInPrintOverview: cat.ShowInPrintOverview,
		EquipmentCount:      cat.EquipmentCount,
		CreatedAt:           cat.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           cat.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(service.CreateCategoryInput{
		Name:                req.Name,
		Description:         req.Description,
		ParentID:            req.ParentID,
		ShowInPrintOverview: req.ShowInPrintOverview,
	})
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid category id", nil)
	}
	category, err := h.categoryService.GetCategory(int32(id))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	var parentID *int32
	if pid, err := strconv.Atoi(c.QueryParam("parentId")); err == nil {
		v := int32(pid)
		parentID = &v
	}
	page := parsePage(c)
	items, total, err := h.categoryService.ListCategories(parentID, page)
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]CategoryResponse, len(items))
	for i, cat := range items {
		resp[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusOK, domain.PaginatedResult[CategoryResponse]{
		Items: resp, Total: total, Skip: page.Skip, Limit: page.Limit,
	})
}

func (h *CategoryHandler) SearchCategories(c echo.Context) error {
	query := c.QueryParam("q")
	items, err := h.categoryService.SearchCategories(query)
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]CategoryResponse, len(items))
	for i, cat := range items {
		resp[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) GetWithEquipmentCount(c echo.Context) error {
	items, err := h.categoryService.GetWithEquipmentCount()
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]CategoryResponse, len(items))
	for i, cat := range items {
		resp[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) GetChildren(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid category id", nil)
	}
	children, err := h.categoryService.GetChildren(int32(id))
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]CategoryResponse, len(children))
	for i, cat := range children {
		resp[i] = toCategoryResponse(cat)
	}
	return c.JSON(http.StatusOK, resp)
}

// PrintOverviewResponse is the combined sort-path/print-hierarchy shape
// returned to the print-overview client.
type PrintOverviewResponse struct {
	SortPath  []int32                    `json:"sortPath"`
	Hierarchy []domain.PrintableCategory `json:"hierarchy"`
}

func (h *CategoryHandler) GetPrintOverview(c echo.Context) error {
	var categoryID *int32
	if id, err := strconv.Atoi(c.QueryParam("categoryId")); err == nil {
		v := int32(id)
		categoryID = &v
	}
	sortPath, hierarchy, err := h.categoryService.GetPrintHierarchyAndSortPath(categoryID)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, PrintOverviewResponse{SortPath: sortPath, Hierarchy: hierarchy})
}

func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid category id", nil)
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(int32(id), service.UpdateCategoryInput{
		Name:                req.Name,
		Description:         req.Description,
		ParentID:            req.ParentID,
		ClearParent:         req.ClearParent,
		ShowInPrintOverview: req.ShowInPrintOverview,
	})
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid category id", nil)
	}
	if err := h.categoryService.DeleteCategory(int32(id)); err != nil {
		return WriteDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

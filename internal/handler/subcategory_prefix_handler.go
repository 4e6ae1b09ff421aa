package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/service"
)

// SubcategoryPrefixHandler handles the admin CRUD surface for per-category
// barcode-prefix overrides.
type SubcategoryPrefixHandler struct {
	subcategoryPrefixService *service.SubcategoryPrefixService
}

func NewSubcategoryPrefixHandler(subcategoryPrefixService *service.SubcategoryPrefixService) *SubcategoryPrefixHandler {
	return &SubcategoryPrefixHandler{subcategoryPrefixService: subcategoryPrefixService}
}

type CreateSubcategoryPrefixRequest struct {
	CategoryID  int32   `json:"categoryId"`
	Name        string  `json:"name"`
	Prefix      string  `json:"prefix"`
	Description *string `json:"description,omitempty"`
}

type UpdateSubcategoryPrefixRequest struct {
	Name        *string `json:"name,omitempty"`
	Prefix      *string `json:"prefix,omitempty"`
	Description *string `json:"description,omitempty"`
}

type SubcategoryPrefixResponse struct {
	ID          int32   `json:"id"`
	CategoryID  int32   `json:"categoryId"`
	Name        string  `json:"name"`
	Prefix      string  `json:"prefix"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toSubcategoryPrefixResponse(p *domain.SubcategoryPrefix) SubcategoryPrefixResponse {
	return SubcategoryPrefixResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Prefix:      p.Prefix,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *SubcategoryPrefixHandler) CreateSubcategoryPrefix(c echo.Context) error {
	var req CreateSubcategoryPrefixRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	prefix, err := h.subcategoryPrefixService.CreateSubcategoryPrefix(service.CreateSubcategoryPrefixInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Prefix:      req.Prefix,
		Description: req.Description,
	})
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toSubcategoryPrefixResponse(prefix))
}

func (h *SubcategoryPrefixHandler) ListSubcategoryPrefixes(c echo.Context) error {
	filter := domain.SubcategoryPrefixFilter{Query: c.QueryParam("query")}
	if categoryID, err := strconv.Atoi(c.QueryParam("categoryId")); err == nil {
		v := int32(categoryID)
		filter.CategoryID = &v
	}

	items, err := h.subcategoryPrefixService.ListSubcategoryPrefixes(filter)
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]SubcategoryPrefixResponse, len(items))
	for i, p := range items {
		resp[i] = toSubcategoryPrefixResponse(p)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *SubcategoryPrefixHandler) GetSubcategoryPrefix(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid subcategory prefix id", nil)
	}
	prefix, err := h.subcategoryPrefixService.GetSubcategoryPrefix(int32(id))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toSubcategoryPrefixResponse(prefix))
}

func (h *SubcategoryPrefixHandler) UpdateSubcategoryPrefix(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid subcategory prefix id", nil)
	}
	var req UpdateSubcategoryPrefixRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	prefix, err := h.subcategoryPrefixService.UpdateSubcategoryPrefix(int32(id), service.UpdateSubcategoryPrefixInput{
		Name:        req.Name,
		Prefix:      req.Prefix,
		Description: req.Description,
	})
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toSubcategoryPrefixResponse(prefix))
}

func (h *SubcategoryPrefixHandler) DeleteSubcategoryPrefix(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid subcategory prefix id", nil)
	}
	if err := h.subcategoryPrefixService.DeleteSubcategoryPrefix(int32(id)); err != nil {
		return WriteDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/service"
)

// EquipmentHandler handles equipment-related HTTP requests.
type EquipmentHandler struct {
	equipmentService *service.EquipmentService
}

func NewEquipmentHandler(equipmentService *service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

type CreateEquipmentRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	SerialNumber    *string `json:"serialNumber,omitempty"`
	CategoryID      int32   `json:"categoryId"`
	ReplacementCost string  `json:"replacementCost"`
	Notes           *string `json:"notes,omitempty"`
	CustomBarcode   *string `json:"customBarcode,omitempty"`
}

type UpdateEquipmentRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	SerialNumber    *string `json:"serialNumber,omitempty"`
	CategoryID      *int32  `json:"categoryId,omitempty"`
	ReplacementCost *string `json:"replacementCost,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

type TransitionStatusRequest struct {
	Status string `json:"status"`
}

type EquipmentResponse struct {
	ID              int32             `json:"id"`
	Name            string            `json:"name"`
	Description     *string           `json:"description,omitempty"`
	SerialNumber    *string           `json:"serialNumber,omitempty"`
	Barcode         string            `json:"barcode"`
	CategoryID      int32             `json:"categoryId"`
	Status          string            `json:"status"`
	ReplacementCost string            `json:"replacementCost"`
	Notes           *string           `json:"notes,omitempty"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
	Category        *CategoryResponse `json:"category,omitempty"`
}

func toEquipmentResponse(e *domain.Equipment) EquipmentResponse {
	resp := EquipmentResponse{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		SerialNumber:    e.SerialNumber,
		Barcode:         e.Barcode,
		CategoryID:      e.CategoryID,
		Status:          string(e.Status),
		ReplacementCost: e.ReplacementCost.StringFixed(2),
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
	}
	if e.Category != nil {
		cat := toCategoryResponse(e.Category)
		resp.Category = &cat
	}
	return resp
}

func (h *EquipmentHandler) CreateEquipment(c echo.Context) error {
	var req CreateEquipmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	cost, err := decimal.NewFromString(req.ReplacementCost)
	if err != nil {
		return NewValidationError(c, "invalid replacement cost", []ValidationError{
			{Field: "replacementCost", Message: "must be a valid decimal number"},
		})
	}

	equipment, err := h.equipmentService.CreateEquipment(service.CreateEquipmentInput{
		Name:            req.Name,
		Description:     req.Description,
		SerialNumber:    req.SerialNumber,
		CategoryID:      req.CategoryID,
		ReplacementCost: cost,
		Notes:           req.Notes,
		CustomBarcode:   req.CustomBarcode,
	})
	if err != nil {
		return WriteDomainError(c, err)
	}

	log.Info().Int32("equipment_id", equipment.ID).Str("barcode", equipment.Barcode).Msg("equipment created")
	return c.JSON(http.StatusCreated, toEquipmentResponse(equipment))
}

func (h *EquipmentHandler) GetEquipment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid equipment id", nil)
	}

	equipment, err := h.equipmentService.GetEquipment(int32(id), false)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toEquipmentResponse(equipment))
}

func (h *EquipmentHandler) GetByBarcode(c echo.Context) error {
	barcode := c.Param("barcode")
	equipment, err := h.equipmentService.GetByBarcode(barcode)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toEquipmentResponse(equipment))
}

func (h *EquipmentHandler) ListEquipment(c echo.Context) error {
	filter := domain.EquipmentFilter{}
	if status := c.QueryParam("status"); status != "" {
		s := domain.EquipmentStatus(status)
		filter.Status = &s
	}
	if categoryID, err := strconv.Atoi(c.QueryParam("categoryId")); err == nil {
		cid := int32(categoryID)
		filter.CategoryID = &cid
	}
	filter.IncludeChildren = c.QueryParam("includeChildren") == "true"
	if q := c.QueryParam("q"); q != "" {
		filter.Query = &q
	}

	page := parsePage(c)
	items, total, err := h.equipmentService.ListEquipment(filter, page)
	if err != nil {
		return WriteDomainError(c, err)
	}

	resp := make([]EquipmentResponse, len(items))
	for i, e := range items {
		resp[i] = toEquipmentResponse(e)
	}
	return c.JSON(http.StatusOK, domain.PaginatedResult[EquipmentResponse]{
		Items: resp, Total: total, Skip: page.Skip, Limit: page.Limit,
	})
}

func (h *EquipmentHandler) SearchEquipment(c echo.Context) error {
	query := c.QueryParam("q")
	page := parsePage(c)
	items, total, err := h.equipmentService.SearchEquipment(query, page)
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]EquipmentResponse, len(items))
	for i, e := range items {
		resp[i] = toEquipmentResponse(e)
	}
	return c.JSON(http.StatusOK, domain.PaginatedResult[EquipmentResponse]{
		Items: resp, Total: total, Skip: page.Skip, Limit: page.Limit,
	})
}

func (h *EquipmentHandler) UpdateEquipment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid equipment id", nil)
	}

	var req UpdateEquipmentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	input := service.UpdateEquipmentInput{
		Name:         req.Name,
		Description:  req.Description,
		SerialNumber: req.SerialNumber,
		CategoryID:   req.CategoryID,
		Notes:        req.Notes,
	}
	if req.ReplacementCost != nil {
		cost, err := decimal.NewFromString(*req.ReplacementCost)
		if err != nil {
			return NewValidationError(c, "invalid replacement cost", []ValidationError{
				{Field: "replacementCost", Message: "must be a valid decimal number"},
			})
		}
		input.ReplacementCost = &cost
	}

	equipment, err := h.equipmentService.UpdateEquipment(int32(id), input)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toEquipmentResponse(equipment))
}

func (h *EquipmentHandler) TransitionStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid equipment id", nil)
	}

	var req TransitionStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	equipment, err := h.equipmentService.TransitionStatus(int32(id), domain.EquipmentStatus(req.Status))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toEquipmentResponse(equipment))
}

func (h *EquipmentHandler) RegenerateBarcode(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid equipment id", nil)
	}

	equipment, err := h.equipmentService.RegenerateBarcode(int32(id))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toEquipmentResponse(equipment))
}

func (h *EquipmentHandler) DeleteEquipment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid equipment id", nil)
	}

	if err := h.equipmentService.DeleteEquipment(int32(id)); err != nil {
		return WriteDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// parsePage reads the skip/limit query params shared by every list endpoint.
func parsePage(c echo.Context) domain.Page {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return domain.Page{Skip: skip, Limit: limit}.Normalize()
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/service"
)

// BarcodeHandler exposes the standalone barcode generation/validation
// endpoints used by label printing and the barcode scanner intake flow.
type BarcodeHandler struct {
	barcodeService *service.BarcodeService
}

func NewBarcodeHandler(barcodeService *service.BarcodeService) *BarcodeHandler {
	return &BarcodeHandler{barcodeService: barcodeService}
}

type GenerateBarcodeRequest struct {
	CategoryID *int32 `json:"categoryId,omitempty"`
}

type GenerateBarcodeResponse struct {
	Barcode string `json:"barcode"`
}

type ValidateBarcodeRequest struct {
	Barcode string `json:"barcode"`
}

type ValidateBarcodeResponse struct {
	Valid    bool  `json:"valid"`
	Sequence int64 `json:"sequence,omitempty"`
}

type NextSequenceResponse struct {
	Next int64 `json:"next"`
}

// Generate handles POST /api/v1/barcode/generate, allocating the next
// sequence number and composing it into a full checked barcode.
func (h *BarcodeHandler) Generate(c echo.Context) error {
	var req GenerateBarcodeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	barcode, err := h.barcodeService.GenerateBarcode(req.CategoryID)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, GenerateBarcodeResponse{Barcode: barcode})
}

// Validate handles POST /api/v1/barcode/validate. It performs a full
// checksum validation and reports the embedded sequence number when valid,
// rather than erroring on a malformed-but-well-formed-looking barcode.
func (h *BarcodeHandler) Validate(c echo.Context) error {
	var req ValidateBarcodeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	sequence, err := h.barcodeService.ParseBarcode(req.Barcode)
	if err != nil {
		return c.JSON(http.StatusOK, ValidateBarcodeResponse{Valid: false})
	}
	return c.JSON(http.StatusOK, ValidateBarcodeResponse{Valid: true, Sequence: sequence})
}

// NextSequence handles GET /api/v1/barcode/next, peeking at the counter
// without allocating it -- useful for a print-preview before committing.
func (h *BarcodeHandler) NextSequence(c echo.Context) error {
	next, err := h.barcodeService.GetNextSequenceNumber()
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, NextSequenceResponse{Next: next})
}

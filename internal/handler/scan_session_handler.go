package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/middleware"
	"github.com/newalexoa/cinerental-backend/internal/service"
)

// ScanSessionHandler handles barcode-scan cart CRUD and the checkout
// handoff into a booking batch.
type ScanSessionHandler struct {
	scanSessionService *service.ScanSessionService
	bookingService     *service.BookingService
}

func NewScanSessionHandler(scanSessionService *service.ScanSessionService, bookingService *service.BookingService) *ScanSessionHandler {
	return &ScanSessionHandler{scanSessionService: scanSessionService, bookingService: bookingService}
}

type CreateScanSessionRequest struct {
	Name  string                   `json:"name"`
	Items []domain.ScanSessionItem `json:"items,omitempty"`
}

type ReplaceItemsRequest struct {
	Items []domain.ScanSessionItem `json:"items"`
}

type CheckoutScanSessionRequest struct {
	ClientID  int32  `json:"clientId"`
	ProjectID *int32 `json:"projectId,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type ScanSessionResponse struct {
	ID        string                   `json:"id"`
	UserID    *string                  `json:"userId,omitempty"`
	Name      string                   `json:"name"`
	Items     []domain.ScanSessionItem `json:"items"`
	ExpiresAt string                   `json:"expiresAt"`
	CreatedAt string                   `json:"createdAt"`
	UpdatedAt string                   `json:"updatedAt"`
}

func toScanSessionResponse(s *domain.ScanSession) ScanSessionResponse {
	return ScanSessionResponse{
		ID:        s.ID.String(),
		UserID:    s.UserID,
		Name:      s.Name,
		Items:     s.Items,
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

// subjectOrNil adapts middleware.GetSubject's empty-string-means-absent
// convention to the *string the scan-session repository scopes lookups by.
func subjectOrNil(c echo.Context) *string {
	subject := middleware.GetSubject(c)
	if subject == "" {
		return nil
	}
	return &subject
}

func (h *ScanSessionHandler) CreateSession(c echo.Context) error {
	var req CreateScanSessionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	session, err := h.scanSessionService.CreateSession(service.CreateScanSessionInput{
		UserID: subjectOrNil(c), Name: req.Name, Items: req.Items,
	})
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toScanSessionResponse(session))
}

func (h *ScanSessionHandler) GetSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid session id", nil)
	}
	session, err := h.scanSessionService.GetSession(id, subjectOrNil(c))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toScanSessionResponse(session))
}

func (h *ScanSessionHandler) ListSessions(c echo.Context) error {
	sessions, err := h.scanSessionService.ListSessions(subjectOrNil(c))
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]ScanSessionResponse, len(sessions))
	for i, s := range sessions {
		resp[i] = toScanSessionResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ScanSessionHandler) ReplaceItems(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid session id", nil)
	}
	var req ReplaceItemsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	session, err := h.scanSessionService.ReplaceItems(id, subjectOrNil(c), req.Items)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toScanSessionResponse(session))
}

func (h *ScanSessionHandler) DeleteSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid session id", nil)
	}
	if err := h.scanSessionService.DeleteSession(id, subjectOrNil(c)); err != nil {
		return WriteDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout converts a session's scanned items into a booking batch, then
// discards the session. Bookings that fail (e.g. an item with a conflicting
// reservation) are reported back without rolling back the successes.
func (h *ScanSessionHandler) Checkout(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid session id", nil)
	}
	var req CheckoutScanSessionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return NewValidationError(c, "invalid start date", nil)
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return NewValidationError(c, "invalid end date", nil)
	}

	userID := subjectOrNil(c)
	session, err := h.scanSessionService.GetSession(id, userID)
	if err != nil {
		return WriteDomainError(c, err)
	}

	items := h.scanSessionService.ToBatchInput(session, req.ClientID, start, end)
	for i := range items {
		items[i].ProjectID = req.ProjectID
	}

	result, err := h.bookingService.BatchCreateBookings(items, req.ProjectID)
	if err != nil {
		return WriteDomainError(c, err)
	}

	if err := h.scanSessionService.DeleteSession(id, userID); err != nil {
		return WriteDomainError(c, err)
	}

	created := make([]BookingResponse, len(result.Created))
	for i, b := range result.Created {
		created[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusCreated, BatchCreateBookingsResponse{Created: created, Failed: result.Failed})
}

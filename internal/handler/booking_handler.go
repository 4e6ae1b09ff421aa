package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/service"
)

// BookingHandler handles booking creation, batch checkout, and status
// transition HTTP requests.
type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type CreateBookingRequest struct {
	ClientID      int32   `json:"clientId"`
	EquipmentID   int32   `json:"equipmentId"`
	ProjectID     *int32  `json:"projectId,omitempty"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	TotalAmount   string  `json:"totalAmount"`
	DepositAmount *string `json:"depositAmount,omitempty"`
	Quantity      int     `json:"quantity"`
	Notes         *string `json:"notes,omitempty"`
}

type BatchCreateBookingsRequest struct {
	ProjectID *int32                 `json:"projectId,omitempty"`
	Items     []CreateBookingRequest `json:"items"`
}

type UpdateBookingRequest struct {
	StartDate     *string  `json:"startDate,omitempty"`
	EndDate       *string  `json:"endDate,omitempty"`
	Quantity      *int     `json:"quantity,omitempty"`
	TotalAmount   *string  `json:"totalAmount,omitempty"`
	DepositAmount *string  `json:"depositAmount,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

type BookingResponse struct {
	ID            int32   `json:"id"`
	ClientID      int32   `json:"clientId"`
	EquipmentID   int32   `json:"equipmentId"`
	ProjectID     *int32  `json:"projectId,omitempty"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Quantity      int     `json:"quantity"`
	TotalAmount   string  `json:"totalAmount"`
	DepositAmount string  `json:"depositAmount"`
	BookingStatus string  `json:"bookingStatus"`
	PaymentStatus string  `json:"paymentStatus"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ClientID:      b.ClientID,
		EquipmentID:   b.EquipmentID,
		ProjectID:     b.ProjectID,
		StartDate:     b.StartDate.Format(time.RFC3339),
		EndDate:       b.EndDate.Format(time.RFC3339),
		Quantity:      b.Quantity,
		TotalAmount:   b.TotalAmount.StringFixed(2),
		DepositAmount: b.DepositAmount.StringFixed(2),
		BookingStatus: string(b.BookingStatus),
		PaymentStatus: string(b.PaymentStatus),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

func parseBookingInput(req CreateBookingRequest) (domain.CreateBookingInput, error) {
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return domain.CreateBookingInput{}, err
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return domain.CreateBookingInput{}, err
	}
	total, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return domain.CreateBookingInput{}, err
	}

	input := domain.CreateBookingInput{
		ClientID:    req.ClientID,
		EquipmentID: req.EquipmentID,
		ProjectID:   req.ProjectID,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: total,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
	}
	if req.DepositAmount != nil {
		deposit, err := decimal.NewFromString(*req.DepositAmount)
		if err != nil {
			return domain.CreateBookingInput{}, err
		}
		input.DepositAmount = &deposit
	}
	return input, nil
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	input, err := parseBookingInput(req)
	if err != nil {
		return NewValidationError(c, "invalid booking fields", nil)
	}

	booking, err := h.bookingService.CreateBooking(input)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(booking))
}

type BatchCreateBookingsResponse struct {
	Created []BookingResponse           `json:"created"`
	Failed  []domain.BatchCreateFailure `json:"failed"`
}

func (h *BookingHandler) BatchCreateBookings(c echo.Context) error {
	var req BatchCreateBookingsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	items := make([]domain.CreateBookingInput, 0, len(req.Items))
	for _, item := range req.Items {
		input, err := parseBookingInput(item)
		if err != nil {
			return NewValidationError(c, "invalid booking fields in batch", nil)
		}
		items = append(items, input)
	}

	result, err := h.bookingService.BatchCreateBookings(items, req.ProjectID)
	if err != nil {
		return WriteDomainError(c, err)
	}

	created := make([]BookingResponse, len(result.Created))
	for i, b := range result.Created {
		created[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusCreated, BatchCreateBookingsResponse{Created: created, Failed: result.Failed})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid booking id", nil)
	}
	booking, err := h.bookingService.GetBooking(int32(id))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	filter := domain.BookingFilter{}
	if equipmentID, err := strconv.Atoi(c.QueryParam("equipmentId")); err == nil {
		v := int32(equipmentID)
		filter.EquipmentID = &v
	}
	if clientID, err := strconv.Atoi(c.QueryParam("clientId")); err == nil {
		v := int32(clientID)
		filter.ClientID = &v
	}
	if projectID, err := strconv.Atoi(c.QueryParam("projectId")); err == nil {
		v := int32(projectID)
		filter.ProjectID = &v
	}
	if status := c.QueryParam("bookingStatus"); status != "" {
		s := domain.BookingStatus(status)
		filter.BookingStatus = &s
	}
	if status := c.QueryParam("paymentStatus"); status != "" {
		s := domain.PaymentStatus(status)
		filter.PaymentStatus = &s
	}
	filter.ActiveOnly = c.QueryParam("activeOnly") == "true"

	page := parsePage(c)
	items, total, err := h.bookingService.ListBookings(filter, page)
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]BookingResponse, len(items))
	for i, b := range items {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, domain.PaginatedResult[BookingResponse]{
		Items: resp, Total: total, Skip: page.Skip, Limit: page.Limit,
	})
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid booking id", nil)
	}

	var req UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	input := domain.UpdateBookingInput{Quantity: req.Quantity, Notes: req.Notes}
	if req.StartDate != nil {
		t, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return NewValidationError(c, "invalid start date", nil)
		}
		input.StartDate = &t
	}
	if req.EndDate != nil {
		t, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return NewValidationError(c, "invalid end date", nil)
		}
		input.EndDate = &t
	}
	if req.TotalAmount != nil {
		v, err := decimal.NewFromString(*req.TotalAmount)
		if err != nil {
			return NewValidationError(c, "invalid total amount", nil)
		}
		input.TotalAmount = &v
	}
	if req.DepositAmount != nil {
		v, err := decimal.NewFromString(*req.DepositAmount)
		if err != nil {
			return NewValidationError(c, "invalid deposit amount", nil)
		}
		input.DepositAmount = &v
	}

	booking, err := h.bookingService.UpdateBooking(int32(id), input)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) TransitionStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid booking id", nil)
	}
	var req TransitionStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	booking, err := h.bookingService.TransitionStatus(int32(id), domain.BookingStatus(req.Status))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) TransitionPaymentStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid booking id", nil)
	}
	var req TransitionStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	booking, err := h.bookingService.TransitionPaymentStatus(int32(id), domain.PaymentStatus(req.Status))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

type AvailabilityResponse struct {
	Available bool                `json:"available"`
	Status    string              `json:"status"`
	Conflicts []domain.BookingRef `json:"conflicts"`
}

func (h *BookingHandler) GetEquipmentAvailability(c echo.Context) error {
	equipmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid equipment id", nil)
	}
	from, err := time.Parse(time.RFC3339, c.QueryParam("from"))
	if err != nil {
		return NewValidationError(c, "invalid from date", nil)
	}
	to, err := time.Parse(time.RFC3339, c.QueryParam("to"))
	if err != nil {
		return NewValidationError(c, "invalid to date", nil)
	}

	available, status, conflicts, err := h.bookingService.GetEquipmentAvailability(int32(equipmentID), from, to)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{
		Available: available, Status: string(status), Conflicts: conflicts,
	})
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/service"
)

// ProjectHandler handles project CRUD and booking-association requests.
type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	ClientID    int32   `json:"clientId"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Description *string `json:"description,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Status      *string `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type ProjectResponse struct {
	ID            int32   `json:"id"`
	Name          string  `json:"name"`
	ClientID      int32   `json:"clientId"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	Description   *string `json:"description,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID,
		Name:          p.Name,
		ClientID:      p.ClientID,
		StartDate:     p.StartDate.Format(time.RFC3339),
		EndDate:       p.EndDate.Format(time.RFC3339),
		Status:        string(p.Status),
		PaymentStatus: string(p.PaymentStatus),
		Description:   p.Description,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req CreateProjectRequest
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

	project, err := h.projectService.CreateProject(domain.CreateProjectInput{
		Name: req.Name, ClientID: req.ClientID, StartDate: start, EndDate: end,
		Description: req.Description, Notes: req.Notes,
	})
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid project id", nil)
	}
	project, err := h.projectService.GetProject(int32(id))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) ListProjects(c echo.Context) error {
	filter := domain.ProjectFilter{}
	if clientID, err := strconv.Atoi(c.QueryParam("clientId")); err == nil {
		v := int32(clientID)
		filter.ClientID = &v
	}
	if status := c.QueryParam("status"); status != "" {
		s := domain.ProjectStatus(status)
		filter.Status = &s
	}
	if q := c.QueryParam("q"); q != "" {
		filter.Query = &q
	}

	page := parsePage(c)
	items, total, err := h.projectService.ListProjects(filter, page)
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]ProjectResponse, len(items))
	for i, p := range items {
		resp[i] = toProjectResponse(p)
	}
	return c.JSON(http.StatusOK, domain.PaginatedResult[ProjectResponse]{
		Items: resp, Total: total, Skip: page.Skip, Limit: page.Limit,
	})
}

func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid project id", nil)
	}
	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	input := domain.UpdateProjectInput{Name: req.Name, Description: req.Description, Notes: req.Notes}
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
	if req.Status != nil {
		s := domain.ProjectStatus(*req.Status)
		input.Status = &s
	}

	project, err := h.projectService.UpdateProject(int32(id), input)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) GetProjectBookings(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid project id", nil)
	}
	bookings, err := h.projectService.GetProjectBookings(int32(id))
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

type AddBookingRequest struct {
	BookingID int32 `json:"bookingId"`
}

func (h *ProjectHandler) AddBooking(c echo.Context) error {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid project id", nil)
	}
	var req AddBookingRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	booking, err := h.projectService.AddBooking(int32(projectID), req.BookingID)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *ProjectHandler) RemoveBooking(c echo.Context) error {
	bookingID, err := strconv.Atoi(c.Param("bookingId"))
	if err != nil {
		return NewValidationError(c, "invalid booking id", nil)
	}
	booking, err := h.projectService.RemoveBooking(int32(bookingID))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid project id", nil)
	}
	if err := h.projectService.DeleteProject(int32(id)); err != nil {
		return WriteDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

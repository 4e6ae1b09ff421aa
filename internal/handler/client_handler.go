package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/service"
)

// ClientHandler handles renter CRUD HTTP requests.
type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type CreateClientRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type SetClientStatusRequest struct {
	Status string `json:"status"`
}

type ClientResponse struct {
	ID        int32   `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Company   *string `json:"company,omitempty"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Company:   client.Company,
		Status:    string(client.Status),
		Notes:     client.Notes,
		CreatedAt: client.CreatedAt.Format(time.RFC3339),
		UpdatedAt: client.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	client, err := h.clientService.CreateClient(service.CreateClientInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Company: req.Company, Notes: req.Notes,
	})
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toClientResponse(client))
}

func (h *ClientHandler) GetClient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid client id", nil)
	}
	client, err := h.clientService.GetClient(int32(id), false)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) ListClients(c echo.Context) error {
	filter := domain.ClientFilter{}
	if status := c.QueryParam("status"); status != "" {
		s := domain.ClientStatus(status)
		filter.Status = &s
	}
	page := parsePage(c)
	items, total, err := h.clientService.ListClients(filter, page)
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]ClientResponse, len(items))
	for i, client := range items {
		resp[i] = toClientResponse(client)
	}
	return c.JSON(http.StatusOK, domain.PaginatedResult[ClientResponse]{
		Items: resp, Total: total, Skip: page.Skip, Limit: page.Limit,
	})
}

func (h *ClientHandler) SearchClients(c echo.Context) error {
	query := c.QueryParam("q")
	page := parsePage(c)
	items, total, err := h.clientService.SearchClients(query, page)
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]ClientResponse, len(items))
	for i, client := range items {
		resp[i] = toClientResponse(client)
	}
	return c.JSON(http.StatusOK, domain.PaginatedResult[ClientResponse]{
		Items: resp, Total: total, Skip: page.Skip, Limit: page.Limit,
	})
}

func (h *ClientHandler) UpdateClient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid client id", nil)
	}
	var req UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	client, err := h.clientService.UpdateClient(int32(id), service.UpdateClientInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Company: req.Company, Notes: req.Notes,
	})
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) SetStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid client id", nil)
	}
	var req SetClientStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}
	client, err := h.clientService.SetStatus(int32(id), domain.ClientStatus(req.Status))
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) DeleteClient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid client id", nil)
	}
	if err := h.clientService.DeleteClient(int32(id)); err != nil {
		return WriteDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ClientHandler) HardDeleteClient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid client id", nil)
	}
	if err := h.clientService.HardDeleteClient(int32(id)); err != nil {
		return WriteDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

package service

import (
	"strings"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

// ClientService handles client CRUD, status management, and the
// hard-delete guard that protects clients with booking history.
type ClientService struct {
	gateway domain.Gateway
}

func NewClientService(gateway domain.Gateway) *ClientService {
	return &ClientService{gateway: gateway}
}

type CreateClientInput struct {
	Name    string
	Email   *string
	Phone   *string
	Company *string
	Notes   *string
}

func (s *ClientService) CreateClient(input CreateClientInput) (*domain.Client, error) {
	var result *domain.Client
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return domain.NewValidationError("client name is required", nil)
		}
		if len(name) > domain.MaxNameLength {
			return domain.NewValidationError("client name too long", map[string]any{"max_length": domain.MaxNameLength})
		}

		created, err := uow.Clients().Create(&domain.Client{
			Name:    name,
			Email:   input.Email,
			Phone:   input.Phone,
			Company: input.Company,
			Status:  domain.ClientActive,
			Notes:   input.Notes,
		})
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	return result, err
}

type UpdateClientInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Notes   *string
}

func (s *ClientService) UpdateClient(id int32, input UpdateClientInput) (*domain.Client, error) {
	var result *domain.Client
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		client, err := uow.Clients().Get(id, false)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domain.NewValidationError("client name is required", nil)
			}
			client.Name = name
		}
		if input.Email != nil {
			client.Email = input.Email
		}
		if input.Phone != nil {
			client.Phone = input.Phone
		}
		if input.Company != nil {
			client.Company = input.Company
		}
		if input.Notes != nil {
			client.Notes = input.Notes
		}

		updated, err := uow.Clients().Update(client)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// SetStatus changes a client's status directly -- clients have no formal
// transition table, ACTIVE/BLOCKED/ARCHIVED can move freely between each
// other, so this is a plain field update rather than a state machine walk.
func (s *ClientService) SetStatus(id int32, status domain.ClientStatus) (*domain.Client, error) {
	var result *domain.Client
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		client, err := uow.Clients().Get(id, false)
		if err != nil {
			return err
		}
		client.Status = status
		updated, err := uow.Clients().Update(client)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

func (s *ClientService) GetClient(id int32, includeDeleted bool) (*domain.Client, error) {
	var result *domain.Client
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		client, err := uow.Clients().Get(id, includeDeleted)
		if err != nil {
			return err
		}
		result = client
		return nil
	})
	return result, err
}

func (s *ClientService) ListClients(filter domain.ClientFilter, page domain.Page) ([]*domain.Client, int64, error) {
	var items []*domain.Client
	var total int64
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		var err error
		items, total, err = uow.Clients().List(filter, page)
		return err
	})
	return items, total, err
}

func (s *ClientService) SearchClients(query string, page domain.Page) ([]*domain.Client, int64, error) {
	if len(query) > domain.MaxSearchQueryLength {
		return nil, 0, domain.NewValidationError("search query too long", map[string]any{"max_length": domain.MaxSearchQueryLength})
	}
	var items []*domain.Client
	var total int64
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		var err error
		items, total, err = uow.Clients().Search(query, page)
		return err
	})
	return items, total, err
}

// DeleteClient soft-deletes a client. Soft-deleted clients remain visible
// to history lookups (includeDeleted=true) but drop out of ordinary listings.
func (s *ClientService) DeleteClient(id int32) error {
	return s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		if _, err := uow.Clients().Get(id, false); err != nil {
			return err
		}
		return uow.Clients().SoftDelete(id)
	})
}

// HardDeleteClient permanently removes a client, refusing when any booking
// with a blocking status still references it.
func (s *ClientService) HardDeleteClient(id int32) error {
	return s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		if _, err := uow.Clients().Get(id, true); err != nil {
			return err
		}

		count, err := uow.Clients().CountActiveBookings(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.NewBusinessError("cannot permanently delete a client with active bookings", map[string]any{
				"client_id":     id,
				"booking_count": count,
			})
		}

		return uow.Clients().HardDelete(id)
	})
}

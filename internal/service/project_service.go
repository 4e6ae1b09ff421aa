package service

import (
	"strings"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

// ProjectService handles project CRUD plus booking association and the
// payment-status rollup derived from member bookings.
type ProjectService struct {
	gateway domain.Gateway
}

func NewProjectService(gateway domain.Gateway) *ProjectService {
	return &ProjectService{gateway: gateway}
}

func (s *ProjectService) CreateProject(input domain.CreateProjectInput) (*domain.Project, error) {
	var result *domain.Project
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return domain.NewValidationError("project name is required", nil)
		}
		if !input.StartDate.Before(input.EndDate) {
			return domain.NewValidationError("end date must be after start date", map[string]any{
				"start_date": input.StartDate, "end_date": input.EndDate,
			})
		}
		if _, err := uow.Clients().Get(input.ClientID, false); err != nil {
			return err
		}

		created, err := uow.Projects().Create(&domain.Project{
			Name:          name,
			ClientID:      input.ClientID,
			StartDate:     input.StartDate,
			EndDate:       input.EndDate,
			Status:        domain.ProjectDraft,
			PaymentStatus: domain.ProjectPaymentUnpaid,
			Description:   input.Description,
			Notes:         input.Notes,
		})
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	return result, err
}

func (s *ProjectService) UpdateProject(id int32, input domain.UpdateProjectInput) (*domain.Project, error) {
	var result *domain.Project
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		project, err := uow.Projects().Get(id, false)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return domain.NewValidationError("project name is required", nil)
			}
			project.Name = name
		}
		startDate := project.StartDate
		if input.StartDate != nil {
			startDate = *input.StartDate
		}
		endDate := project.EndDate
		if input.EndDate != nil {
			endDate = *input.EndDate
		}
		if !startDate.Before(endDate) {
			return domain.NewValidationError("end date must be after start date", map[string]any{
				"start_date": startDate, "end_date": endDate,
			})
		}
		project.StartDate = startDate
		project.EndDate = endDate

		if input.Status != nil {
			project.Status = *input.Status
		}
		if input.Description != nil {
			project.Description = input.Description
		}
		if input.Notes != nil {
			project.Notes = input.Notes
		}

		updated, err := uow.Projects().Update(project)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

func (s *ProjectService) GetProject(id int32) (*domain.Project, error) {
	var result *domain.Project
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		project, err := uow.Projects().Get(id, false)
		if err != nil {
			return err
		}
		bookings, err := uow.Bookings().GetByProject(id)
		if err != nil {
			return err
		}
		project.Bookings = bookings
		result = project
		return nil
	})
	return result, err
}

func (s *ProjectService) ListProjects(filter domain.ProjectFilter, page domain.Page) ([]*domain.Project, int64, error) {
	var items []*domain.Project
	var total int64
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		var err error
		items, total, err = uow.Projects().List(filter, page)
		return err
	})
	return items, total, err
}

// AddBooking attaches bookingID to projectID, requiring both to exist and
// not be soft-deleted, then recomputes the project's payment rollup.
func (s *ProjectService) AddBooking(projectID, bookingID int32) (*domain.Booking, error) {
	var result *domain.Booking
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		if _, err := uow.Projects().Get(projectID, false); err != nil {
			return err
		}
		if _, err := uow.Bookings().Get(bookingID); err != nil {
			return err
		}

		updated, err := uow.Bookings().SetProject(bookingID, &projectID)
		if err != nil {
			return err
		}
		if err := recomputeProjectPaymentStatus(uow, projectID); err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

// RemoveBooking detaches bookingID from whatever project it belongs to.
func (s *ProjectService) RemoveBooking(bookingID int32) (*domain.Booking, error) {
	var result *domain.Booking
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		existing, err := uow.Bookings().Get(bookingID)
		if err != nil {
			return err
		}
		previousProject := existing.ProjectID

		updated, err := uow.Bookings().SetProject(bookingID, nil)
		if err != nil {
			return err
		}
		if previousProject != nil {
			if err := recomputeProjectPaymentStatus(uow, *previousProject); err != nil {
				return err
			}
		}
		result = updated
		return nil
	})
	return result, err
}

// GetProjectBookings returns every booking in the project, eagerly
// annotated with its equipment so callers can derive the printable
// category breadcrumb via CategoryService.
func (s *ProjectService) GetProjectBookings(projectID int32) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		if _, err := uow.Projects().Get(projectID, false); err != nil {
			return err
		}
		b, err := uow.Bookings().GetByProject(projectID)
		if err != nil {
			return err
		}
		for _, booking := range b {
			if equipment, err := uow.Equipment().Get(booking.EquipmentID, true); err == nil {
				booking.Equipment = equipment
			}
		}
		bookings = b
		return nil
	})
	return bookings, err
}

// DeleteProject soft-deletes the project and clears the project_id on
// every member booking -- a project aggregates bookings, it never owns
// them.
func (s *ProjectService) DeleteProject(id int32) error {
	return s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		if _, err := uow.Projects().Get(id, false); err != nil {
			return err
		}
		if err := uow.Bookings().ClearProjectReferences(id); err != nil {
			return err
		}
		return uow.Projects().SoftDelete(id)
	})
}

// recomputeProjectPaymentStatus re-derives and persists payment_status
// from the current set of member bookings.
func recomputeProjectPaymentStatus(uow domain.UnitOfWork, projectID int32) error {
	bookings, err := uow.Bookings().GetByProject(projectID)
	if err != nil {
		return err
	}
	status := domain.DeriveProjectPaymentStatus(bookings)
	return uow.Projects().UpdatePaymentStatus(projectID, status)
}

package service

import (
	"strings"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

// DocumentService handles document metadata CRUD, keeping the underlying
// file storage collaborator (internal/repository/storage) out of scope --
// this service only manages the pointer record.
type DocumentService struct {
	gateway domain.Gateway
}

func NewDocumentService(gateway domain.Gateway) *DocumentService {
	return &DocumentService{gateway: gateway}
}

type CreateDocumentInput struct {
	ClientID  int32
	BookingID *int32
	Type      domain.DocumentType
	Title     string
	FilePath  string
	FileName  string
	FileSize  int64
	MimeType  string
}

func (s *DocumentService) CreateDocument(input CreateDocumentInput) (*domain.Document, error) {
	var result *domain.Document
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		title := strings.TrimSpace(input.Title)
		if title == "" {
			return domain.NewValidationError("document title is required", nil)
		}
		if input.FilePath == "" || input.FileName == "" {
			return domain.NewDocumentError("document file path and name are required", nil)
		}

		if _, err := uow.Clients().Get(input.ClientID, false); err != nil {
			return err
		}
		if input.BookingID != nil {
			if _, err := uow.Bookings().Get(*input.BookingID); err != nil {
				return err
			}
		}

		created, err := uow.Documents().Create(&domain.Document{
			ClientID:  input.ClientID,
			BookingID: input.BookingID,
			Type:      input.Type,
			Title:     title,
			FilePath:  input.FilePath,
			FileName:  input.FileName,
			FileSize:  input.FileSize,
			MimeType:  input.MimeType,
			Status:    domain.DocumentDraft,
		})
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	return result, err
}

type UpdateDocumentInput struct {
	Title  *string
	Status *domain.DocumentStatus
}

func (s *DocumentService) UpdateDocument(id int32, input UpdateDocumentInput) (*domain.Document, error) {
	var result *domain.Document
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		document, err := uow.Documents().Get(id, false)
		if err != nil {
			return err
		}

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return domain.NewValidationError("document title is required", nil)
			}
			document.Title = title
		}
		if input.Status != nil {
			document.Status = *input.Status
		}

		updated, err := uow.Documents().Update(document)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	return result, err
}

func (s *DocumentService) GetDocument(id int32, includeDeleted bool) (*domain.Document, error) {
	var result *domain.Document
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		document, err := uow.Documents().Get(id, includeDeleted)
		if err != nil {
			return err
		}
		result = document
		return nil
	})
	return result, err
}

func (s *DocumentService) ListDocuments(filter domain.DocumentFilter, page domain.Page) ([]*domain.Document, int64, error) {
	var items []*domain.Document
	var total int64
	err := s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		var err error
		items, total, err = uow.Documents().List(filter, page)
		return err
	})
	return items, total, err
}

func (s *DocumentService) DeleteDocument(id int32) error {
	return s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		if _, err := uow.Documents().Get(id, false); err != nil {
			return err
		}
		return uow.Documents().SoftDelete(id)
	})
}

// ClearBookingReference detaches every document pointing at bookingID, so
// the documents remain as client records without a booking. Bookings have
// no delete path in this repository, and no service calls this method.
func (s *DocumentService) ClearBookingReference(bookingID int32) error {
	return s.gateway.WithTx(func(uow domain.UnitOfWork) error {
		return uow.Documents().ClearBookingReference(bookingID)
	})
}

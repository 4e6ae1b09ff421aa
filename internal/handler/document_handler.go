package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/newalexoa/cinerental-backend/internal/repository/storage"
	"github.com/newalexoa/cinerental-backend/internal/service"
)

// DocumentHandler handles document metadata CRUD and file upload requests.
// blobStore is nil when no S3-compatible endpoint was configured; uploads
// are then rejected with 503 rather than panicking on a nil client.
type DocumentHandler struct {
	documentService *service.DocumentService
	blobStore       storage.BlobStore
}

func NewDocumentHandler(documentService *service.DocumentService, blobStore storage.BlobStore) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, blobStore: blobStore}
}

type UpdateDocumentRequest struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

type DocumentResponse struct {
	ID        int32  `json:"id"`
	ClientID  int32  `json:"clientId"`
	BookingID *int32 `json:"bookingId,omitempty"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	FileName  string `json:"fileName"`
	FileSize  int64  `json:"fileSize"`
	MimeType  string `json:"mimeType"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		ClientID:  d.ClientID,
		BookingID: d.BookingID,
		Type:      string(d.Type),
		Title:     d.Title,
		FileName:  d.FileName,
		FileSize:  d.FileSize,
		MimeType:  d.MimeType,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.Format(time.RFC3339),
	}
}

// UploadDocument handles POST /api/v1/documents (multipart upload). It
// streams the file into object storage first, then records the metadata
// row pointing at the stored object path.
func (h *DocumentHandler) UploadDocument(c echo.Context) error {
	if h.blobStore == nil {
		return NewServiceUnavailableError(c, "document storage is not configured")
	}

	clientID, err := strconv.Atoi(c.FormValue("clientId"))
	if err != nil {
		return NewValidationError(c, "clientId is required", nil)
	}

	var bookingID *int32
	if v := c.FormValue("bookingId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return NewValidationError(c, "invalid bookingId", nil)
		}
		i := int32(id)
		bookingID = &i
	}

	docType := c.FormValue("type")
	if docType == "" {
		docType = string(domain.DocumentOther)
	}
	title := c.FormValue("title")

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "file is required", []ValidationError{
			{Field: "file", Message: "file is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open uploaded document")
		return NewInternalError(c, "failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("failed to read uploaded document")
		return NewInternalError(c, "failed to read file")
	}

	// The object path embeds a document id of 0 until the metadata row
	// exists; CreateDocument below doesn't need the real path to match
	// exactly, it just records whatever FilePath this upload produced.
	objectPath := storage.ObjectPath(int32(clientID), 0, file.Filename)
	contentType := file.Header.Get("Content-Type")

	ctx := c.Request().Context()
	if _, err := h.blobStore.Upload(ctx, objectPath, bytes.NewReader(data), contentType, int64(len(data))); err != nil {
		log.Error().Err(err).Str("path", objectPath).Msg("failed to upload document")
		return NewInternalError(c, "failed to upload document")
	}

	document, err := h.documentService.CreateDocument(service.CreateDocumentInput{
		ClientID:  int32(clientID),
		BookingID: bookingID,
		Type:      domain.DocumentType(docType),
		Title:     title,
		FilePath:  objectPath,
		FileName:  file.Filename,
		FileSize:  int64(len(data)),
		MimeType:  contentType,
	})
	if err != nil {
		// Best-effort cleanup of the orphaned object; the metadata write is
		// the source of truth and already failed.
		_ = h.blobStore.Delete(ctx, objectPath)
		return WriteDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, toDocumentResponse(document))
}

func (h *DocumentHandler) GetDocument(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid document id", nil)
	}
	document, err := h.documentService.GetDocument(int32(id), false)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toDocumentResponse(document))
}

// GetDownloadURL handles GET /api/v1/documents/:id/url, returning a
// presigned URL for temporary direct access to the underlying object.
func (h *DocumentHandler) GetDownloadURL(c echo.Context) error {
	if h.blobStore == nil {
		return NewServiceUnavailableError(c, "document storage is not configured")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid document id", nil)
	}
	document, err := h.documentService.GetDocument(int32(id), false)
	if err != nil {
		return WriteDomainError(c, err)
	}

	url, err := h.blobStore.GeneratePresignedURL(c.Request().Context(), document.FilePath, 2*time.Hour)
	if err != nil {
		log.Error().Err(err).Str("path", document.FilePath).Msg("failed to generate presigned URL")
		return NewInternalError(c, "failed to generate download URL")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"url":       url,
		"expiresAt": time.Now().Add(2 * time.Hour).Format(time.RFC3339),
	})
}

func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	filter := domain.DocumentFilter{}
	if clientID, err := strconv.Atoi(c.QueryParam("clientId")); err == nil {
		v := int32(clientID)
		filter.ClientID = &v
	}
	if bookingID, err := strconv.Atoi(c.QueryParam("bookingId")); err == nil {
		v := int32(bookingID)
		filter.BookingID = &v
	}
	if t := c.QueryParam("type"); t != "" {
		dt := domain.DocumentType(t)
		filter.Type = &dt
	}
	if s := c.QueryParam("status"); s != "" {
		ds := domain.DocumentStatus(s)
		filter.Status = &ds
	}

	page := parsePage(c)
	items, total, err := h.documentService.ListDocuments(filter, page)
	if err != nil {
		return WriteDomainError(c, err)
	}
	resp := make([]DocumentResponse, len(items))
	for i, d := range items {
		resp[i] = toDocumentResponse(d)
	}
	return c.JSON(http.StatusOK, domain.PaginatedResult[DocumentResponse]{
		Items: resp, Total: total, Skip: page.Skip, Limit: page.Limit,
	})
}

func (h *DocumentHandler) UpdateDocument(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid document id", nil)
	}
	var req UpdateDocumentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body", nil)
	}

	input := service.UpdateDocumentInput{Title: req.Title}
	if req.Status != nil {
		s := domain.DocumentStatus(*req.Status)
		input.Status = &s
	}

	document, err := h.documentService.UpdateDocument(int32(id), input)
	if err != nil {
		return WriteDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toDocumentResponse(document))
}

func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "invalid document id", nil)
	}
	if err := h.documentService.DeleteDocument(int32(id)); err != nil {
		return WriteDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

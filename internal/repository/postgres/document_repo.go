package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/newalexoa/cinerental-backend/internal/domain"
)

type DocumentRepo struct {
	db DBTX
}

func NewDocumentRepo(db DBTX) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = `id, client_id, booking_id, type, title, file_path, file_name, file_size, mime_type, status, created_at, updated_at, deleted_at`

func scanDocument(row interface{ Scan(dest ...any) error }) (*domain.Document, error) {
	var d domain.Document
	var bookingID pgtype.Int4
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(&d.ID, &d.ClientID, &bookingID, &d.Type, &d.Title, &d.FilePath, &d.FileName, &d.FileSize, &d.MimeType, &d.Status, &d.CreatedAt, &d.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	d.BookingID = nilOrInt4(bookingID)
	d.DeletedAt = nilOrTime(deletedAt)
	return &d, nil
}

func collectDocuments(rows pgx.Rows) ([]*domain.Document, error) {
	var items []*domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *DocumentRepo) Get(id int32, includeDeleted bool) (*domain.Document, error) {
	ctx := context.Background()
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	row := r.db.QueryRow(ctx, query, id)
	d, err := scanDocument(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("document not found", map[string]any{"document_id": id})
	}
	return d, err
}

func (r *DocumentRepo) List(filter domain.DocumentFilter, page domain.Page) ([]*domain.Document, int64, error) {
	ctx := context.Background()
	page = page.Normalize()

	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if !filter.IncludeDeleted {
		where = append(where, "deleted_at IS NULL")
	}
	if filter.ClientID != nil {
		where = append(where, "client_id = "+arg(*filter.ClientID))
	}
	if filter.BookingID != nil {
		where = append(where, "booking_id = "+arg(*filter.BookingID))
	}
	if filter.Type != nil {
		where = append(where, "type = "+arg(*filter.Type))
	}
	if filter.Status != nil {
		where = append(where, "status = "+arg(*filter.Status))
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM documents`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limitArg := arg(page.Limit)
	offsetArg := arg(page.Skip)
	rows, err := r.db.Query(ctx, `SELECT `+documentColumns+` FROM documents`+whereSQL+` ORDER BY created_at DESC LIMIT `+limitArg+` OFFSET `+offsetArg, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectDocuments(rows)
	return items, total, err
}

func (r *DocumentRepo) Create(d *domain.Document) (*domain.Document, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
INSERT INTO documents (client_id, booking_id, type, title, file_path, file_name, file_size, mime_type, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+documentColumns,
		d.ClientID, int4OrNil(d.BookingID), d.Type, d.Title, d.FilePath, d.FileName, d.FileSize, d.MimeType, d.Status)
	return scanDocument(row)
}

func (r *DocumentRepo) Update(d *domain.Document) (*domain.Document, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
UPDATE documents SET title=$1, type=$2, status=$3, updated_at=now()
WHERE id=$4 AND deleted_at IS NULL
RETURNING `+documentColumns,
		d.Title, d.Type, d.Status, d.ID)
	doc, err := scanDocument(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("document not found", map[string]any{"document_id": d.ID})
	}
	return doc, err
}

func (r *DocumentRepo) SoftDelete(id int32) error {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `UPDATE documents SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("document not found", map[string]any{"document_id": id})
	}
	return nil
}

func (r *DocumentRepo) ClearBookingReference(bookingID int32) error {
	ctx := context.Background()
	_, err := r.db.Exec(ctx, `UPDATE documents SET booking_id=NULL, updated_at=now() WHERE booking_id=$1`, bookingID)
	return err
}

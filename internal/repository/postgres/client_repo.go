package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/newalexoa/cinerental-backend/internal/domain"
)

type ClientRepo struct {
	db DBTX
}

func NewClientRepo(db DBTX) *ClientRepo {
	return &ClientRepo{db: db}
}

const clientColumns = `id, name, email, phone, company, status, notes, created_at, updated_at, deleted_at`

func scanClient(row interface{ Scan(dest ...any) error }) (*domain.Client, error) {
	var c domain.Client
	var email, phone, company, notes pgtype.Text
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(&c.ID, &c.Name, &email, &phone, &company, &c.Status, &notes, &c.CreatedAt, &c.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	c.Email = nilOrText(email)
	c.Phone = nilOrText(phone)
	c.Company = nilOrText(company)
	c.Notes = nilOrText(notes)
	c.DeletedAt = nilOrTime(deletedAt)
	return &c, nil
}

func collectClients(rows pgx.Rows) ([]*domain.Client, error) {
	var items []*domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *ClientRepo) Get(id int32, includeDeleted bool) (*domain.Client, error) {
	ctx := context.Background()
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	row := r.db.QueryRow(ctx, query, id)
	c, err := scanClient(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("client not found", map[string]any{"client_id": id})
	}
	return c, err
}

func (r *ClientRepo) GetMany(ids []int32) ([]*domain.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ANY($1) AND deleted_at IS NULL`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectClients(rows)
}

func (r *ClientRepo) List(filter domain.ClientFilter, page domain.Page) ([]*domain.Client, int64, error) {
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
	if filter.Status != nil {
		where = append(where, "status = "+arg(*filter.Status))
	}
	if filter.Query != nil && *filter.Query != "" {
		where = append(where, "(name ILIKE '%'||"+arg(*filter.Query)+"||'%' OR email ILIKE '%'||"+arg(*filter.Query)+"||'%' OR phone = "+arg(*filter.Query)+")")
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM clients`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limitArg := arg(page.Limit)
	offsetArg := arg(page.Skip)
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients`+whereSQL+` ORDER BY name LIMIT `+limitArg+` OFFSET `+offsetArg, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectClients(rows)
	return items, total, err
}

func (r *ClientRepo) Search(query string, page domain.Page) ([]*domain.Client, int64, error) {
	ctx := context.Background()
	page = page.Normalize()
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM clients WHERE deleted_at IS NULL AND (name ILIKE '%'||$1||'%' OR email ILIKE '%'||$1||'%' OR phone = $1)`, query).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE deleted_at IS NULL AND (name ILIKE '%'||$1||'%' OR email ILIKE '%'||$1||'%' OR phone = $1) ORDER BY name LIMIT $2 OFFSET $3`, query, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectClients(rows)
	return items, total, err
}

func (r *ClientRepo) Create(c *domain.Client) (*domain.Client, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
INSERT INTO clients (name, email, phone, company, status, notes)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+clientColumns,
		c.Name, textOrNil(c.Email), textOrNil(c.Phone), textOrNil(c.Company), c.Status, textOrNil(c.Notes))
	return scanClient(row)
}

func (r *ClientRepo) Update(c *domain.Client) (*domain.Client, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
UPDATE clients SET name=$1, email=$2, phone=$3, company=$4, status=$5, notes=$6, updated_at=now()
WHERE id=$7 AND deleted_at IS NULL
RETURNING `+clientColumns,
		c.Name, textOrNil(c.Email), textOrNil(c.Phone), textOrNil(c.Company), c.Status, textOrNil(c.Notes), c.ID)
	cl, err := scanClient(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("client not found", map[string]any{"client_id": c.ID})
	}
	return cl, err
}

func (r *ClientRepo) SoftDelete(id int32) error {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `UPDATE clients SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("client not found", map[string]any{"client_id": id})
	}
	return nil
}

func (r *ClientRepo) HardDelete(id int32) error {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("client not found", map[string]any{"client_id": id})
	}
	return nil
}

func (r *ClientRepo) CountActiveBookings(clientID int32) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE client_id = $1 AND booking_status IN ('PENDING','CONFIRMED','ACTIVE')`, clientID).Scan(&count)
	return count, err
}

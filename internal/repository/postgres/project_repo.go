package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/newalexoa/cinerental-backend/internal/domain"
)

type ProjectRepo struct {
	db DBTX
}

func NewProjectRepo(db DBTX) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `id, name, client_id, start_date, end_date, status, payment_status, description, notes, created_at, updated_at, deleted_at`

func scanProject(row interface{ Scan(dest ...any) error }) (*domain.Project, error) {
	var p domain.Project
	var description, notes pgtype.Text
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(&p.ID, &p.Name, &p.ClientID, &p.StartDate, &p.EndDate, &p.Status, &p.PaymentStatus, &description, &notes, &p.CreatedAt, &p.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	p.Description = nilOrText(description)
	p.Notes = nilOrText(notes)
	p.DeletedAt = nilOrTime(deletedAt)
	return &p, nil
}

func (r *ProjectRepo) Get(id int32, includeDeleted bool) (*domain.Project, error) {
	ctx := context.Background()
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	row := r.db.QueryRow(ctx, query, id)
	p, err := scanProject(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("project not found", map[string]any{"project_id": id})
	}
	return p, err
}

func (r *ProjectRepo) List(filter domain.ProjectFilter, page domain.Page) ([]*domain.Project, int64, error) {
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
	if filter.Status != nil {
		where = append(where, "status = "+arg(*filter.Status))
	}
	if filter.Query != nil && *filter.Query != "" {
		where = append(where, "name ILIKE '%'||"+arg(*filter.Query)+"||'%'")
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM projects`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limitArg := arg(page.Limit)
	offsetArg := arg(page.Skip)
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects`+whereSQL+` ORDER BY start_date DESC LIMIT `+limitArg+` OFFSET `+offsetArg, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectProjects(rows)
	return items, total, err
}

func collectProjects(rows pgx.Rows) ([]*domain.Project, error) {
	var items []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *ProjectRepo) Create(p *domain.Project) (*domain.Project, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
INSERT INTO projects (name, client_id, start_date, end_date, status, payment_status, description, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+projectColumns,
		p.Name, p.ClientID, p.StartDate, p.EndDate, p.Status, p.PaymentStatus, textOrNil(p.Description), textOrNil(p.Notes))
	return scanProject(row)
}

func (r *ProjectRepo) Update(p *domain.Project) (*domain.Project, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
UPDATE projects SET name=$1, start_date=$2, end_date=$3, status=$4, description=$5, notes=$6, updated_at=now()
WHERE id=$7 AND deleted_at IS NULL
RETURNING `+projectColumns,
		p.Name, p.StartDate, p.EndDate, p.Status, textOrNil(p.Description), textOrNil(p.Notes), p.ID)
	proj, err := scanProject(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("project not found", map[string]any{"project_id": p.ID})
	}
	return proj, err
}

func (r *ProjectRepo) UpdatePaymentStatus(id int32, status domain.ProjectPaymentStatus) error {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `UPDATE projects SET payment_status=$1, updated_at=now() WHERE id=$2 AND deleted_at IS NULL`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("project not found", map[string]any{"project_id": id})
	}
	return nil
}

func (r *ProjectRepo) SoftDelete(id int32) error {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `UPDATE projects SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("project not found", map[string]any{"project_id": id})
	}
	return nil
}

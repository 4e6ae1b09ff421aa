package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/newalexoa/cinerental-backend/internal/domain"
)

type CategoryRepo struct {
	db DBTX
}

func NewCategoryRepo(db DBTX) *CategoryRepo {
	return &CategoryRepo{db: db}
}

const categoryColumns = `id, name, description, parent_id, show_in_print_overview, created_at, updated_at, deleted_at`

type categoryRowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row categoryRowScanner) (*domain.Category, error) {
	var c domain.Category
	var description pgtype.Text
	var parentID pgtype.Int4
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(&c.ID, &c.Name, &description, &parentID, &c.ShowInPrintOverview, &c.CreatedAt, &c.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	c.Description = nilOrText(description)
	c.ParentID = nilOrInt4(parentID)
	c.DeletedAt = nilOrTime(deletedAt)
	return &c, nil
}

func (r *CategoryRepo) Get(id int32) (*domain.Category, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND deleted_at IS NULL`, id)
	c, err := scanCategory(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("category not found", map[string]any{"category_id": id})
	}
	return c, err
}

func (r *CategoryRepo) GetByName(name string) (*domain.Category, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1 AND deleted_at IS NULL`, name)
	c, err := scanCategory(row)
	if isNoRows(err) {
		return nil, nil
	}
	return c, err
}

func (r *CategoryRepo) GetAll(parentID *int32, page domain.Page) ([]*domain.Category, int64, error) {
	ctx := context.Background()
	page = page.Normalize()

	var total int64
	var countRow pgx.Row
	var rows pgx.Rows
	var err error

	if parentID != nil {
		countRow = r.db.QueryRow(ctx, `SELECT count(*) FROM categories WHERE deleted_at IS NULL AND parent_id = $1`, *parentID)
		if err := countRow.Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE deleted_at IS NULL AND parent_id = $1 ORDER BY name LIMIT $2 OFFSET $3`, *parentID, page.Limit, page.Skip)
	} else {
		countRow = r.db.QueryRow(ctx, `SELECT count(*) FROM categories WHERE deleted_at IS NULL`)
		if err := countRow.Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE deleted_at IS NULL ORDER BY name LIMIT $1 OFFSET $2`, page.Limit, page.Skip)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectCategories(rows)
	return items, total, err
}

func (r *CategoryRepo) GetChildren(id int32) ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1 AND deleted_at IS NULL ORDER BY name`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCategories(rows)
}

// GetCategoryPathFromRoot returns the root-to-id ancestry chain via a
// recursive CTE walking parent_id upward.
func (r *CategoryRepo) GetCategoryPathFromRoot(id int32) ([]domain.CategoryPathRow, error) {
	ctx := context.Background()
	const query = `
WITH RECURSIVE ancestry AS (
    SELECT id, name, parent_id, show_in_print_overview, 0 AS depth
    FROM categories WHERE id = $1 AND deleted_at IS NULL
    UNION ALL
    SELECT c.id, c.name, c.parent_id, c.show_in_print_overview, a.depth + 1
    FROM categories c
    JOIN ancestry a ON c.id = a.parent_id
    WHERE c.deleted_at IS NULL
)
SELECT id, name, show_in_print_overview FROM ancestry ORDER BY depth DESC`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var path []domain.CategoryPathRow
	for rows.Next() {
		var row domain.CategoryPathRow
		if err := rows.Scan(&row.ID, &row.Name, &row.ShowInPrintOverview); err != nil {
			return nil, err
		}
		path = append(path, row)
	}
	return path, rows.Err()
}

func (r *CategoryRepo) GetAllWithEquipmentCount() ([]*domain.Category, error) {
	ctx := context.Background()
	const query = `
SELECT c.id, c.name, c.description, c.parent_id, c.show_in_print_overview, c.created_at, c.updated_at, c.deleted_at, count(e.id) AS equipment_count
FROM categories c
LEFT JOIN equipment e ON e.category_id = c.id AND e.deleted_at IS NULL
WHERE c.deleted_at IS NULL
GROUP BY c.id
ORDER BY c.name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*domain.Category
	for rows.Next() {
		var c domain.Category
		var description pgtype.Text
		var parentID pgtype.Int4
		var deletedAt pgtype.Timestamptz
		if err := rows.Scan(&c.ID, &c.Name, &description, &parentID, &c.ShowInPrintOverview, &c.CreatedAt, &c.UpdatedAt, &deletedAt, &c.EquipmentCount); err != nil {
			return nil, err
		}
		c.Description = nilOrText(description)
		c.ParentID = nilOrInt4(parentID)
		c.DeletedAt = nilOrTime(deletedAt)
		result = append(result, &c)
	}
	return result, rows.Err()
}

func (r *CategoryRepo) Search(query string) ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE deleted_at IS NULL AND (name ILIKE '%'||$1||'%' OR description ILIKE '%'||$1||'%') ORDER BY name`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCategories(rows)
}

func (r *CategoryRepo) Create(c *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
INSERT INTO categories (name, description, parent_id, show_in_print_overview)
VALUES ($1, $2, $3, $4)
RETURNING `+categoryColumns,
		c.Name, textOrNil(c.Description), int4OrNil(c.ParentID), c.ShowInPrintOverview)
	return scanCategory(row)
}

func (r *CategoryRepo) Update(c *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
UPDATE categories SET name=$1, description=$2, parent_id=$3, show_in_print_overview=$4, updated_at=now()
WHERE id=$5 AND deleted_at IS NULL
RETURNING `+categoryColumns,
		c.Name, textOrNil(c.Description), int4OrNil(c.ParentID), c.ShowInPrintOverview, c.ID)
	cat, err := scanCategory(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("category not found", map[string]any{"category_id": c.ID})
	}
	return cat, err
}

func (r *CategoryRepo) SoftDelete(id int32) error {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `UPDATE categories SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("category not found", map[string]any{"category_id": id})
	}
	return nil
}

func (r *CategoryRepo) CountNonDeletedEquipment(categoryID int32) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM equipment WHERE category_id = $1 AND deleted_at IS NULL`, categoryID).Scan(&count)
	return count, err
}

func (r *CategoryRepo) GetSubcategoryPrefix(categoryID int32) (*domain.SubcategoryPrefix, error) {
	ctx := context.Background()
	var p domain.SubcategoryPrefix
	err := r.db.QueryRow(ctx, `SELECT category_id, prefix FROM subcategory_prefixes WHERE category_id = $1`, categoryID).Scan(&p.CategoryID, &p.Prefix)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// collectCategories drains a category result set into a slice.
func collectCategories(rows pgx.Rows) ([]*domain.Category, error) {
	var items []*domain.Category
	for rows.Next() {
		var c domain.Category
		var description pgtype.Text
		var parentID pgtype.Int4
		var deletedAt pgtype.Timestamptz
		if err := rows.Scan(&c.ID, &c.Name, &description, &parentID, &c.ShowInPrintOverview, &c.CreatedAt, &c.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		c.Description = nilOrText(description)
		c.ParentID = nilOrInt4(parentID)
		c.DeletedAt = nilOrTime(deletedAt)
		items = append(items, &c)
	}
	return items, rows.Err()
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

const subcategoryPrefixColumns = `id, category_id, name, prefix, description, created_at, updated_at`

type subcategoryPrefixRowScanner interface {
	Scan(dest ...any) error
}

func scanSubcategoryPrefix(row subcategoryPrefixRowScanner) (*domain.SubcategoryPrefix, error) {
	var p domain.SubcategoryPrefix
	var description pgtype.Text
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Prefix, &description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Description = nilOrText(description)
	return &p, nil
}

// BarcodeRepo persists the singleton monotonic sequence counter in a
// one-row table, plus the subcategory prefix overrides. NextSequence must
// run inside Store.WithTx so the row lock is scoped to the caller's
// transaction and released on commit or rollback.
type BarcodeRepo struct {
	db DBTX
}

func NewBarcodeRepo(db DBTX) *BarcodeRepo {
	return &BarcodeRepo{db: db}
}

func (r *BarcodeRepo) NextSequence() (int64, error) {
	ctx := context.Background()
	var next int64
	err := r.db.QueryRow(ctx, `UPDATE barcode_sequence SET last_number = last_number + 1 WHERE id = 1 RETURNING last_number`).Scan(&next)
	if isNoRows(err) {
		return 0, domain.NewBusinessError("barcode sequence counter row is missing", nil)
	}
	return next, err
}

func (r *BarcodeRepo) PeekSequence() (int64, error) {
	ctx := context.Background()
	var last int64
	err := r.db.QueryRow(ctx, `SELECT last_number FROM barcode_sequence WHERE id = 1`).Scan(&last)
	if isNoRows(err) {
		return 0, domain.NewBusinessError("barcode sequence counter row is missing", nil)
	}
	return last, err
}

func (r *BarcodeRepo) GetSubcategoryPrefix(categoryID int32) (*domain.SubcategoryPrefix, error) {
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

func (r *BarcodeRepo) CreateSubcategoryPrefix(p *domain.SubcategoryPrefix) (*domain.SubcategoryPrefix, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
INSERT INTO subcategory_prefixes (category_id, name, prefix, description)
VALUES ($1, $2, $3, $4)
RETURNING `+subcategoryPrefixColumns,
		p.CategoryID, p.Name, p.Prefix, textOrNil(p.Description))
	return scanSubcategoryPrefix(row)
}

func (r *BarcodeRepo) GetSubcategoryPrefixByID(id int32) (*domain.SubcategoryPrefix, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `SELECT `+subcategoryPrefixColumns+` FROM subcategory_prefixes WHERE id = $1`, id)
	p, err := scanSubcategoryPrefix(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("subcategory prefix not found", map[string]any{"id": id})
	}
	return p, err
}

func (r *BarcodeRepo) ListSubcategoryPrefixes(filter domain.SubcategoryPrefixFilter) ([]*domain.SubcategoryPrefix, error) {
	ctx := context.Background()

	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		where = append(where, "category_id = "+arg(*filter.CategoryID))
	}
	if filter.Query != "" {
		where = append(where, "name ILIKE '%'||"+arg(filter.Query)+"||'%'")
	}

	query := `SELECT ` + subcategoryPrefixColumns + ` FROM subcategory_prefixes`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.SubcategoryPrefix
	for rows.Next() {
		p, err := scanSubcategoryPrefix(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *BarcodeRepo) UpdateSubcategoryPrefix(p *domain.SubcategoryPrefix) (*domain.SubcategoryPrefix, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `
UPDATE subcategory_prefixes
SET name = $2, prefix = $3, description = $4, updated_at = now()
WHERE id = $1
RETURNING `+subcategoryPrefixColumns,
		p.ID, p.Name, p.Prefix, textOrNil(p.Description))
	scanned, err := scanSubcategoryPrefix(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("subcategory prefix not found", map[string]any{"id": p.ID})
	}
	return scanned, err
}

func (r *BarcodeRepo) DeleteSubcategoryPrefix(id int32) error {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `DELETE FROM subcategory_prefixes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("subcategory prefix not found", map[string]any{"id": id})
	}
	return nil
}

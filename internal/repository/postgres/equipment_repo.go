package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/newalexoa/cinerental-backend/internal/domain"
)

type EquipmentRepo struct {
	db DBTX
}

func NewEquipmentRepo(db DBTX) *EquipmentRepo {
	return &EquipmentRepo{db: db}
}

const equipmentColumns = `id, name, description, serial_number, barcode, category_id, status, replacement_cost, notes, created_at, updated_at, deleted_at`

func scanEquipment(row interface{ Scan(dest ...any) error }) (*domain.Equipment, error) {
	var e domain.Equipment
	var description, serialNumber, notes pgtype.Text
	var replacementCost pgtype.Numeric
	var deletedAt pgtype.Timestamptz
	if err := row.Scan(&e.ID, &e.Name, &description, &serialNumber, &e.Barcode, &e.CategoryID, &e.Status, &replacementCost, &notes, &e.CreatedAt, &e.UpdatedAt, &deletedAt); err != nil {
		return nil, err
	}
	e.Description = nilOrText(description)
	e.SerialNumber = nilOrText(serialNumber)
	e.Notes = nilOrText(notes)
	e.ReplacementCost = numericToDecimal(replacementCost)
	e.DeletedAt = nilOrTime(deletedAt)
	return &e, nil
}

func collectEquipment(rows pgx.Rows) ([]*domain.Equipment, error) {
	var items []*domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *EquipmentRepo) Get(id int32, includeDeleted bool) (*domain.Equipment, error) {
	ctx := context.Background()
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	row := r.db.QueryRow(ctx, query, id)
	e, err := scanEquipment(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"equipment_id": id})
	}
	return e, err
}

func (r *EquipmentRepo) GetMany(ids []int32) ([]*domain.Equipment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	rows, err := r.db.Query(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE id = ANY($1) AND deleted_at IS NULL`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEquipment(rows)
}

func (r *EquipmentRepo) GetByBarcode(barcode string) (*domain.Equipment, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE barcode = $1 AND deleted_at IS NULL`, barcode)
	e, err := scanEquipment(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"barcode": barcode})
	}
	return e, err
}

func (r *EquipmentRepo) GetByCategory(categoryID int32, includeDeleted bool) ([]*domain.Equipment, error) {
	ctx := context.Background()
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE category_id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY name`
	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEquipment(rows)
}

// List applies the filter predicates from domain.EquipmentFilter. When both
// AvailableFrom/AvailableTo are set it excludes equipment with a blocking
// booking overlapping that window, using the closed-closed overlap
// predicate directly in SQL.
func (r *EquipmentRepo) List(filter domain.EquipmentFilter, page domain.Page) ([]*domain.Equipment, int64, error) {
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
	if filter.CategoryID != nil {
		if filter.IncludeChildren {
			where = append(where, `category_id IN (
				WITH RECURSIVE descendants AS (
					SELECT id FROM categories WHERE id = `+arg(*filter.CategoryID)+`
					UNION ALL
					SELECT c.id FROM categories c JOIN descendants d ON c.parent_id = d.id
				) SELECT id FROM descendants)`)
		} else {
			where = append(where, "category_id = "+arg(*filter.CategoryID))
		}
	}
	if filter.Query != nil && *filter.Query != "" {
		where = append(where, "(name ILIKE '%'||"+arg(*filter.Query)+"||'%' OR barcode = "+arg(*filter.Query)+")")
	}
	if filter.AvailableFrom != nil && filter.AvailableTo != nil {
		from := arg(*filter.AvailableFrom)
		to := arg(*filter.AvailableTo)
		where = append(where, fmt.Sprintf(`NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.equipment_id = equipment.id
			  AND b.booking_status IN ('PENDING','CONFIRMED','ACTIVE')
			  AND b.start_date <= %s AND %s <= b.end_date)`, to, from))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM equipment`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limitArg := arg(page.Limit)
	offsetArg := arg(page.Skip)
	rows, err := r.db.Query(ctx, `SELECT `+equipmentColumns+` FROM equipment`+whereSQL+` ORDER BY name LIMIT `+limitArg+` OFFSET `+offsetArg, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectEquipment(rows)
	return items, total, err
}

func (r *EquipmentRepo) Search(query string, page domain.Page) ([]*domain.Equipment, int64, error) {
	ctx := context.Background()
	page = page.Normalize()
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM equipment WHERE deleted_at IS NULL AND (name ILIKE '%'||$1||'%' OR barcode = $1 OR serial_number = $1)`, query).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, `SELECT `+equipmentColumns+` FROM equipment WHERE deleted_at IS NULL AND (name ILIKE '%'||$1||'%' OR barcode = $1 OR serial_number = $1) ORDER BY name LIMIT $2 OFFSET $3`, query, page.Limit, page.Skip)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectEquipment(rows)
	return items, total, err
}

func (r *EquipmentRepo) Create(e *domain.Equipment) (*domain.Equipment, error) {
	ctx := context.Background()
	cost, err := decimalToNumeric(e.ReplacementCost)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
INSERT INTO equipment (name, description, serial_number, barcode, category_id, status, replacement_cost, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+equipmentColumns,
		e.Name, textOrNil(e.Description), textOrNil(e.SerialNumber), e.Barcode, e.CategoryID, e.Status, cost, textOrNil(e.Notes))
	return scanEquipment(row)
}

func (r *EquipmentRepo) Update(e *domain.Equipment) (*domain.Equipment, error) {
	ctx := context.Background()
	cost, err := decimalToNumeric(e.ReplacementCost)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
UPDATE equipment SET name=$1, description=$2, serial_number=$3, category_id=$4, replacement_cost=$5, notes=$6, updated_at=now()
WHERE id=$7 AND deleted_at IS NULL
RETURNING `+equipmentColumns,
		e.Name, textOrNil(e.Description), textOrNil(e.SerialNumber), e.CategoryID, cost, textOrNil(e.Notes), e.ID)
	eq, err := scanEquipment(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"equipment_id": e.ID})
	}
	return eq, err
}

func (r *EquipmentRepo) UpdateStatus(id int32, status domain.EquipmentStatus) (*domain.Equipment, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `UPDATE equipment SET status=$1, updated_at=now() WHERE id=$2 AND deleted_at IS NULL RETURNING `+equipmentColumns, status, id)
	e, err := scanEquipment(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"equipment_id": id})
	}
	return e, err
}

func (r *EquipmentRepo) UpdateBarcode(id int32, barcode string) (*domain.Equipment, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `UPDATE equipment SET barcode=$1, updated_at=now() WHERE id=$2 AND deleted_at IS NULL RETURNING `+equipmentColumns, barcode, id)
	e, err := scanEquipment(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"equipment_id": id})
	}
	return e, err
}

func (r *EquipmentRepo) SoftDelete(id int32) error {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `UPDATE equipment SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("equipment not found", map[string]any{"equipment_id": id})
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/newalexoa/cinerental-backend/internal/domain"
)

type BookingRepo struct {
	db DBTX
}

func NewBookingRepo(db DBTX) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = `id, client_id, equipment_id, project_id, start_date, end_date, quantity, total_amount, deposit_amount, booking_status, payment_status, notes, created_at, updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*domain.Booking, error) {
	var b domain.Booking
	var projectID pgtype.Int4
	var notes pgtype.Text
	var totalAmount, depositAmount pgtype.Numeric
	if err := row.Scan(&b.ID, &b.ClientID, &b.EquipmentID, &projectID, &b.StartDate, &b.EndDate, &b.Quantity, &totalAmount, &depositAmount, &b.BookingStatus, &b.PaymentStatus, &notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.ProjectID = nilOrInt4(projectID)
	b.Notes = nilOrText(notes)
	b.TotalAmount = numericToDecimal(totalAmount)
	b.DepositAmount = numericToDecimal(depositAmount)
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]*domain.Booking, error) {
	var items []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *BookingRepo) Get(id int32) (*domain.Booking, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"booking_id": id})
	}
	return b, err
}

func (r *BookingRepo) GetMany(ids []int32) ([]*domain.Booking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepo) GetByEquipment(equipmentID int32) ([]*domain.Booking, error) {
	ctx := context.Background()
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE equipment_id = $1 ORDER BY start_date`, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepo) GetByProject(projectID int32) ([]*domain.Booking, error) {
	ctx := context.Background()
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE project_id = $1 ORDER BY start_date`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepo) List(filter domain.BookingFilter, page domain.Page) ([]*domain.Booking, int64, error) {
	ctx := context.Background()
	page = page.Normalize()

	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.EquipmentID != nil {
		where = append(where, "equipment_id = "+arg(*filter.EquipmentID))
	}
	if filter.ClientID != nil {
		where = append(where, "client_id = "+arg(*filter.ClientID))
	}
	if filter.ProjectID != nil {
		where = append(where, "project_id = "+arg(*filter.ProjectID))
	}
	if filter.BookingStatus != nil {
		where = append(where, "booking_status = "+arg(*filter.BookingStatus))
	}
	if filter.PaymentStatus != nil {
		where = append(where, "payment_status = "+arg(*filter.PaymentStatus))
	}
	if filter.StartDate != nil {
		where = append(where, "end_date >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		where = append(where, "start_date <= "+arg(*filter.EndDate))
	}
	if filter.ActiveOnly {
		where = append(where, "booking_status IN ('PENDING','CONFIRMED','ACTIVE')")
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings`+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limitArg := arg(page.Limit)
	offsetArg := arg(page.Skip)
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings`+whereSQL+` ORDER BY start_date DESC LIMIT `+limitArg+` OFFSET `+offsetArg, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectBookings(rows)
	return items, total, err
}

func (r *BookingRepo) Create(b *domain.Booking) (*domain.Booking, error) {
	ctx := context.Background()
	total, err := decimalToNumeric(b.TotalAmount)
	if err != nil {
		return nil, err
	}
	deposit, err := decimalToNumeric(b.DepositAmount)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
INSERT INTO bookings (client_id, equipment_id, project_id, start_date, end_date, quantity, total_amount, deposit_amount, booking_status, payment_status, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING `+bookingColumns,
		b.ClientID, b.EquipmentID, int4OrNil(b.ProjectID), b.StartDate, b.EndDate, b.Quantity, total, deposit, b.BookingStatus, b.PaymentStatus, textOrNil(b.Notes))
	return scanBooking(row)
}

func (r *BookingRepo) Update(b *domain.Booking) (*domain.Booking, error) {
	ctx := context.Background()
	total, err := decimalToNumeric(b.TotalAmount)
	if err != nil {
		return nil, err
	}
	deposit, err := decimalToNumeric(b.DepositAmount)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
UPDATE bookings SET start_date=$1, end_date=$2, quantity=$3, total_amount=$4, deposit_amount=$5, notes=$6, updated_at=now()
WHERE id=$7
RETURNING `+bookingColumns,
		b.StartDate, b.EndDate, b.Quantity, total, deposit, textOrNil(b.Notes), b.ID)
	booking, err := scanBooking(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"booking_id": b.ID})
	}
	return booking, err
}

func (r *BookingRepo) UpdateStatus(id int32, status domain.BookingStatus) (*domain.Booking, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `UPDATE bookings SET booking_status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id)
	b, err := scanBooking(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"booking_id": id})
	}
	return b, err
}

func (r *BookingRepo) UpdatePaymentStatus(id int32, status domain.PaymentStatus) (*domain.Booking, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `UPDATE bookings SET payment_status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id)
	b, err := scanBooking(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"booking_id": id})
	}
	return b, err
}

func (r *BookingRepo) SetProject(id int32, projectID *int32) (*domain.Booking, error) {
	ctx := context.Background()
	row := r.db.QueryRow(ctx, `UPDATE bookings SET project_id=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, int4OrNil(projectID), id)
	b, err := scanBooking(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"booking_id": id})
	}
	return b, err
}

func (r *BookingRepo) ClearProjectReferences(projectID int32) error {
	ctx := context.Background()
	_, err := r.db.Exec(ctx, `UPDATE bookings SET project_id=NULL, updated_at=now() WHERE project_id=$1`, projectID)
	return err
}

func (r *BookingRepo) CountBlockingByEquipment(equipmentID int32) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE equipment_id=$1 AND booking_status IN ('PENDING','CONFIRMED','ACTIVE')`, equipmentID).Scan(&count)
	return count, err
}

// FindConflicts implements the closed-closed overlap predicate:
// a_start <= b_end AND b_start <= a_end, restricted to blocking
// statuses, with an optional self-exclusion for update checks.
func (r *BookingRepo) FindConflicts(equipmentID int32, from, to time.Time, excludeBookingID int32) ([]*domain.Booking, error) {
	ctx := context.Background()
	query := `SELECT ` + bookingColumns + ` FROM bookings
WHERE equipment_id = $1
  AND booking_status IN ('PENDING','CONFIRMED','ACTIVE')
  AND start_date <= $3 AND $2 <= end_date`
	args := []any{equipmentID, from, to}
	if excludeBookingID != 0 {
		query += ` AND id <> $4`
		args = append(args, excludeBookingID)
	}
	query += ` ORDER BY start_date`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

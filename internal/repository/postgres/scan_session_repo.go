package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/newalexoa/cinerental-backend/internal/domain"
)

type ScanSessionRepo struct {
	db DBTX
}

func NewScanSessionRepo(db DBTX) *ScanSessionRepo {
	return &ScanSessionRepo{db: db}
}

const scanSessionColumns = `id, user_id, name, items, expires_at, created_at, updated_at`

func scanScanSession(row interface{ Scan(dest ...any) error }) (*domain.ScanSession, error) {
	var s domain.ScanSession
	var userID pgtype.Text
	var itemsJSON []byte
	if err := row.Scan(&s.ID, &userID, &s.Name, &itemsJSON, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.UserID = nilOrText(userID)
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (r *ScanSessionRepo) Get(id uuid.UUID, userID *string) (*domain.ScanSession, error) {
	ctx := context.Background()
	query := `SELECT ` + scanSessionColumns + ` FROM scan_sessions WHERE id = $1 AND expires_at > now()`
	args := []any{id}
	if userID != nil {
		query += ` AND user_id = $2`
		args = append(args, *userID)
	}
	row := r.db.QueryRow(ctx, query, args...)
	s, err := scanScanSession(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("scan session not found", map[string]any{"scan_session_id": id})
	}
	return s, err
}

// List preserves a deliberate quirk: a nil userID yields an empty slice
// rather than every session.
func (r *ScanSessionRepo) List(userID *string) ([]*domain.ScanSession, error) {
	if userID == nil {
		return []*domain.ScanSession{}, nil
	}
	ctx := context.Background()
	rows, err := r.db.Query(ctx, `SELECT `+scanSessionColumns+` FROM scan_sessions WHERE user_id = $1 AND expires_at > now() ORDER BY created_at DESC`, *userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*domain.ScanSession
	for rows.Next() {
		s, err := scanScanSession(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *ScanSessionRepo) Create(s *domain.ScanSession) (*domain.ScanSession, error) {
	ctx := context.Background()
	itemsJSON, err := json.Marshal(s.Items)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, `
INSERT INTO scan_sessions (id, user_id, name, items, expires_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+scanSessionColumns,
		s.ID, textOrNil(s.UserID), s.Name, itemsJSON, s.ExpiresAt)
	return scanScanSession(row)
}

func (r *ScanSessionRepo) ReplaceItems(id uuid.UUID, userID *string, items []domain.ScanSessionItem) (*domain.ScanSession, error) {
	ctx := context.Background()
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	query := `UPDATE scan_sessions SET items = $1, updated_at = now() WHERE id = $2 AND expires_at > now()`
	args := []any{itemsJSON, id}
	if userID != nil {
		query += ` AND user_id = $3`
		args = append(args, *userID)
	}
	query += ` RETURNING ` + scanSessionColumns
	row := r.db.QueryRow(ctx, query, args...)
	s, err := scanScanSession(row)
	if isNoRows(err) {
		return nil, domain.NewNotFoundError("scan session not found", map[string]any{"scan_session_id": id})
	}
	return s, err
}

func (r *ScanSessionRepo) Delete(id uuid.UUID, userID *string) error {
	ctx := context.Background()
	query := `DELETE FROM scan_sessions WHERE id = $1`
	args := []any{id}
	if userID != nil {
		query += ` AND user_id = $2`
		args = append(args, *userID)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("scan session not found", map[string]any{"scan_session_id": id})
	}
	return nil
}

func (r *ScanSessionRepo) PurgeExpired(now time.Time) (int64, error) {
	ctx := context.Background()
	tag, err := r.db.Exec(ctx, `DELETE FROM scan_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

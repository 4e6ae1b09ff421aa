package postgres

import (
	"context"

	"github.com/newalexoa/cinerental-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Store is the persistence gateway implementation: a pooled connection
// plus the transactional-scope contract every service depends on.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool exposes the underlying pool for repositories constructed outside a
// transactional scope (most reads, and writes that don't need atomicity
// with anything else).
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// unitOfWork binds one repository per entity to a single pgx transaction.
type unitOfWork struct {
	categories   *CategoryRepo
	equipment    *EquipmentRepo
	clients      *ClientRepo
	projects     *ProjectRepo
	bookings     *BookingRepo
	documents    *DocumentRepo
	scanSessions *ScanSessionRepo
	barcodes     *BarcodeRepo
}

func (u *unitOfWork) Categories() domain.CategoryRepository       { return u.categories }
func (u *unitOfWork) Equipment() domain.EquipmentRepository       { return u.equipment }
func (u *unitOfWork) Clients() domain.ClientRepository            { return u.clients }
func (u *unitOfWork) Projects() domain.ProjectRepository          { return u.projects }
func (u *unitOfWork) Bookings() domain.BookingRepository          { return u.bookings }
func (u *unitOfWork) Documents() domain.DocumentRepository        { return u.documents }
func (u *unitOfWork) ScanSessions() domain.ScanSessionRepository  { return u.scanSessions }
func (u *unitOfWork) Barcodes() domain.BarcodeRepository          { return u.barcodes }

// WithTx opens one transaction, hands the caller a UnitOfWork bound to it,
// and commits iff fn returns nil. Any error -- including one from a
// cancelled context -- rolls the scope back; Rollback after a successful
// Commit is a documented no-op in pgx, so the deferred call is always safe.
func (s *Store) WithTx(fn func(uow domain.UnitOfWork) error) error {
	ctx := context.Background()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr.Error() != "tx is closed" {
			log.Error().Err(rbErr).Msg("rollback failed")
		}
	}()

	uow := &unitOfWork{
		categories:   &CategoryRepo{db: tx},
		equipment:    &EquipmentRepo{db: tx},
		clients:      &ClientRepo{db: tx},
		projects:     &ProjectRepo{db: tx},
		bookings:     &BookingRepo{db: tx},
		documents:    &DocumentRepo{db: tx},
		scanSessions: &ScanSessionRepo{db: tx},
		barcodes:     &BarcodeRepo{db: tx},
	}

	if err := fn(uow); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

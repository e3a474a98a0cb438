package booking

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cruise-booking/internal/model"
	"github.com/iliyamo/cruise-booking/internal/repository"
)

// SQLStore implements Store over the repository layer.  All
// transactional primitives reuse the repositories' ...Tx methods so
// the SQL lives in one place.
type SQLStore struct {
	db           *sql.DB
	customers    *repository.CustomerRepo
	cruises      *repository.CruiseRepo
	reservations *repository.ReservationRepo
}

// NewSQLStore constructs a SQLStore.  All dependencies must be non-nil.
func NewSQLStore(db *sql.DB, customers *repository.CustomerRepo, cruises *repository.CruiseRepo, reservations *repository.ReservationRepo) *SQLStore {
	if db == nil || customers == nil || cruises == nil || reservations == nil {
		panic("nil dependency passed to NewSQLStore")
	}
	return &SQLStore{db: db, customers: customers, cruises: cruises, reservations: reservations}
}

// CustomerExists reports whether the customer id references a row.
func (s *SQLStore) CustomerExists(ctx context.Context, id uint64) (bool, error) {
	return s.customers.Exists(ctx, id)
}

// CruiseExists reports whether the cruise number references a row.
func (s *SQLStore) CruiseExists(ctx context.Context, cnum uint64) (bool, error) {
	return s.cruises.Exists(ctx, cnum)
}

// InTx opens a transaction, runs fn and commits on success.  Any
// error from fn or from the commit rolls the transaction back.
func (s *SQLStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&sqlTx{tx: tx, store: s}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// sqlTx adapts a live *sql.Tx to the engine's Tx interface.
type sqlTx struct {
	tx    *sql.Tx
	store *SQLStore
}

func (t *sqlTx) AvailableSeats(ctx context.Context, cruiseID uint64) (int32, error) {
	return t.store.cruises.AvailableSeatsTx(ctx, t.tx, cruiseID)
}

func (t *sqlTx) Reservation(ctx context.Context, customerID, cruiseID uint64) (*model.Reservation, error) {
	return t.store.reservations.GetByCustomerAndCruiseTx(ctx, t.tx, customerID, cruiseID)
}

func (t *sqlTx) CreateReservation(ctx context.Context, res *model.Reservation) error {
	return t.store.reservations.CreateTx(ctx, t.tx, res)
}

func (t *sqlTx) UpdateReservationStatus(ctx context.Context, id uint64, st model.Status) error {
	return t.store.reservations.UpdateStatusTx(ctx, t.tx, id, st)
}

func (t *sqlTx) IncrementSold(ctx context.Context, cruiseID uint64) error {
	return t.store.cruises.IncrementSoldTx(ctx, t.tx, cruiseID)
}

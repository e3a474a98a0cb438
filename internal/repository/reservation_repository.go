package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cruise-booking/internal/model"
)

// ErrReservationNotFound is returned when no reservation exists for a
// (customer, cruise) pair.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides CRUD operations for reservations.  At most
// one reservation exists per (customer, cruise) pair, enforced by a
// unique key in the schema.  The ...Tx methods run inside the booking
// transaction; the caller must commit or roll back.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// GetByCustomerAndCruiseTx loads the reservation for a (customer,
// cruise) pair within a transaction, locking the row so a concurrent
// booking on the same pair serializes behind it.  It returns
// ErrReservationNotFound when no row exists.
func (r *ReservationRepo) GetByCustomerAndCruiseTx(ctx context.Context, tx *sql.Tx, customerID, cruiseID uint64) (*model.Reservation, error) {
	const q = `SELECT id, customer_id, cruise_id, status, created_at, updated_at
	           FROM reservations
	           WHERE customer_id = ? AND cruise_id = ?
	           FOR UPDATE`
	var res model.Reservation
	var raw string
	err := tx.QueryRowContext(ctx, q, customerID, cruiseID).Scan(
		&res.ID, &res.CustomerID, &res.CruiseID, &raw, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	st, err := model.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	res.Status = st
	return &res, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction.  The database assigns the identifier; it is populated
// on the provided record along with the row's timestamps.  Status must
// already be set to a valid enumeration value.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (customer_id, cruise_id, status) VALUES (?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.CustomerID, res.CruiseID, string(res.Status))
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// UpdateStatusTx applies a status transition to an existing
// reservation row.  No new row is created and the tickets-sold counter
// is untouched: seat accounting happens only at initial creation.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, st model.Status) error {
	const q = `UPDATE reservations SET status = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, string(st), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// CountByStatus returns how many reservations currently hold the
// given status across all cruises.
func (r *ReservationRepo) CountByStatus(ctx context.Context, st model.Status) (int64, error) {
	const q = `SELECT COUNT(customer_id) FROM reservations WHERE status = ?`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, string(st)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ReservationDetail is a reservation joined with its customer's name,
// returned by ListByCustomerName for display.
type ReservationDetail struct {
	ID         uint64       `json:"id"`
	CustomerID uint64       `json:"customer_id"`
	CruiseID   uint64       `json:"cruise_id"`
	Status     model.Status `json:"status"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
}

// ListByCustomerName returns all reservations held by customers with
// the given first and last name, newest first.  When no reservations
// exist, an empty slice is returned.
func (r *ReservationRepo) ListByCustomerName(ctx context.Context, fname, lname string) ([]ReservationDetail, error) {
	const q = `SELECT r.id, r.customer_id, r.cruise_id, r.status, c.fname, c.lname
	           FROM reservations r
	           JOIN customers c ON c.id = r.customer_id
	           WHERE c.fname = ? AND c.lname = ?
	           ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, fname, lname)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		var raw string
		if err := rows.Scan(&d.ID, &d.CustomerID, &d.CruiseID, &raw, &d.FirstName, &d.LastName); err != nil {
			return nil, err
		}
		st, err := model.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		d.Status = st
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cruise-booking/internal/model"
)

// ErrCruiseNotFound is returned when a cruise lookup fails, including
// availability queries for cruises that have no operating ship
// assigned yet.
var ErrCruiseNotFound = errors.New("cruise not found")

// availableSeatsQuery computes the seat headroom of a cruise: the
// operating ship's capacity minus the cruise's cumulative tickets
// sold.  The join through cruise_info determines which ship bounds
// the cruise.
const availableSeatsQuery = `SELECT s.seats - c.num_sold
	FROM cruises c
	JOIN cruise_info ci ON ci.cruise_id = c.cnum
	JOIN ships s ON s.id = ci.ship_id
	WHERE c.cnum = ?`

// CruiseRepo provides methods to create cruises, assign ships to them
// and query seat availability.  The ...Tx variants operate inside an
// existing transaction and are the primitives the booking engine
// drives.
type CruiseRepo struct {
	db *sql.DB
}

// NewCruiseRepo constructs a CruiseRepo with the given DB handle.
func NewCruiseRepo(db *sql.DB) *CruiseRepo {
	return &CruiseRepo{db: db}
}

// Create inserts a new cruise with a caller-supplied cruise number.  A
// colliding number surfaces as ErrDuplicateID.
func (r *CruiseRepo) Create(ctx context.Context, c *model.Cruise) error {
	const q = `INSERT INTO cruises (cnum, cost, num_sold, num_stops, departure_date, arrival_date, arrival_port, departure_port)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		c.CNum, c.Cost, c.NumSold, c.NumStops,
		c.DepartureDate, c.ArrivalDate, c.ArrivalPort, c.DeparturePort,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

// AssignShip links a cruise to the ship operating it.  Each cruise can
// be operated by exactly one ship; assigning twice surfaces as
// ErrDuplicateID, and referencing an unknown ship or cruise as
// ErrShipNotFound / ErrCruiseNotFound.
func (r *CruiseRepo) AssignShip(ctx context.Context, cruiseID, shipID uint64) error {
	const q = `INSERT INTO cruise_info (cruise_id, ship_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, q, cruiseID, shipID); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) {
			switch me.Number {
			case mysqlErrDuplicateEntry:
				return ErrDuplicateID
			case mysqlErrNoReferencedRow:
				// Distinguishing which side of the association is
				// missing requires an extra lookup.
				if ok, lookErr := r.Exists(ctx, cruiseID); lookErr == nil && !ok {
					return ErrCruiseNotFound
				}
				return ErrShipNotFound
			}
		}
		return err
	}
	return nil
}

// Exists reports whether a cruise with the given number is registered.
func (r *CruiseRepo) Exists(ctx context.Context, cnum uint64) (bool, error) {
	const q = `SELECT 1 FROM cruises WHERE cnum = ?`
	var one int
	err := r.db.QueryRowContext(ctx, q, cnum).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AvailableSeats returns the seat headroom for a cruise.  A negative
// headroom means more tickets were sold than the operating ship has
// seats; the value is returned alongside ErrCapacityInconsistent so
// the caller can both report the corruption and see its magnitude.
func (r *CruiseRepo) AvailableSeats(ctx context.Context, cnum uint64) (int32, error) {
	var available int32
	err := r.db.QueryRowContext(ctx, availableSeatsQuery, cnum).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCruiseNotFound
		}
		return 0, err
	}
	if available < 0 {
		return available, ErrCapacityInconsistent
	}
	return available, nil
}

// AvailableSeatsTx is the transactional variant used by the booking
// engine.  FOR UPDATE locks the cruise row (and the joined ship row)
// so that concurrent bookings against the same cruise serialize around
// the seat-count invariant.  Negative headroom is returned as-is; the
// engine treats it as "no seats".
func (r *CruiseRepo) AvailableSeatsTx(ctx context.Context, tx *sql.Tx, cnum uint64) (int32, error) {
	const q = availableSeatsQuery + ` FOR UPDATE`
	var available int32
	err := tx.QueryRowContext(ctx, q, cnum).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCruiseNotFound
		}
		return 0, err
	}
	return available, nil
}

// IncrementSoldTx bumps a cruise's tickets-sold counter by one inside
// the provided transaction.  It is called exactly once per reservation
// that occupies a seat; nothing in this workflow ever decrements the
// counter.
func (r *CruiseRepo) IncrementSoldTx(ctx context.Context, tx *sql.Tx, cnum uint64) error {
	const q = `UPDATE cruises SET num_sold = num_sold + 1 WHERE cnum = ?`
	res, err := tx.ExecContext(ctx, q, cnum)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCruiseNotFound
	}
	return nil
}

package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cruise-booking/internal/model"
)

// ErrShipNotFound is returned when a ship lookup fails.
var ErrShipNotFound = errors.New("ship not found")

// MySQL server error numbers for duplicate keys and foreign key
// violations on delete/insert.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
	mysqlErrNoReferencedRow = 1452
)

// ShipRepo provides methods to create, look up and delete ships, and
// to aggregate repair counts for reporting.  It embeds a database
// handle to perform queries and commands.
type ShipRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewShipRepo constructs a ShipRepo with the given DB handle.
func NewShipRepo(db *sql.DB) *ShipRepo {
	return &ShipRepo{db: db}
}

// Create inserts a new ship.  The identifier is caller-supplied, so a
// colliding id surfaces as ErrDuplicateID rather than a raw driver
// error.
func (r *ShipRepo) Create(ctx context.Context, s *model.Ship) error {
	const q = `INSERT INTO ships (id, make, model, age, seats) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, s.ID, s.Make, s.Model, s.Age, s.Seats); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

// GetByID retrieves a ship by its identifier.  It returns
// ErrShipNotFound when no row is found.
func (r *ShipRepo) GetByID(ctx context.Context, id uint64) (*model.Ship, error) {
	const q = `SELECT id, make, model, age, seats FROM ships WHERE id = ?`
	var s model.Ship
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Make, &s.Model, &s.Age, &s.Seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShipNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Exists reports whether a ship with the given id is registered.  A
// storage failure propagates as an error and is never reported as
// "not found".
func (r *ShipRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT 1 FROM ships WHERE id = ?`
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a ship by id.  ErrShipNotFound is returned when no
// row matched; ErrConflict when cruises or repairs still reference the
// ship.
func (r *ShipRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM ships WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrRowIsReferenced {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrShipNotFound
	}
	return nil
}

// RepairCount pairs a ship with its total number of recorded repairs.
type RepairCount struct {
	ShipID       uint64 `json:"ship_id"`
	TotalRepairs int64  `json:"total_repairs"`
}

// RepairCounts returns the total number of repairs per ship in
// descending order.
func (r *ShipRepo) RepairCounts(ctx context.Context) ([]RepairCount, error) {
	const q = `SELECT ship_id, COUNT(rid) AS total_repairs
	           FROM repairs
	           GROUP BY ship_id
	           ORDER BY total_repairs DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make([]RepairCount, 0)
	for rows.Next() {
		var rc RepairCount
		if err := rows.Scan(&rc.ShipID, &rc.TotalRepairs); err != nil {
			return nil, err
		}
		counts = append(counts, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

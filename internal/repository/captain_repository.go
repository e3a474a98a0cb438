package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/cruise-booking/internal/model"
)

// ErrCaptainNotFound is returned when a captain lookup fails.
var ErrCaptainNotFound = errors.New("captain not found")

// CaptainRepo provides methods to create, look up and delete captains.
type CaptainRepo struct {
	db *sql.DB
}

// NewCaptainRepo constructs a CaptainRepo with the given DB handle.
func NewCaptainRepo(db *sql.DB) *CaptainRepo {
	return &CaptainRepo{db: db}
}

// Create inserts a new captain with a caller-supplied identifier.  A
// colliding id surfaces as ErrDuplicateID.
func (r *CaptainRepo) Create(ctx context.Context, c *model.Captain) error {
	const q = `INSERT INTO captains (id, full_name, nationality) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, c.ID, c.FullName, c.Nationality); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

// Exists reports whether a captain with the given id is registered.
func (r *CaptainRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT 1 FROM captains WHERE id = ?`
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

// Delete removes a captain by id.  ErrCaptainNotFound is returned when
// no row matched; ErrConflict when dependent records still reference
// the captain.
func (r *CaptainRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM captains WHERE id = ?`
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
		return ErrCaptainNotFound
	}
	return nil
}

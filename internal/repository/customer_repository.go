package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cruise-booking/internal/model"
)

// ErrCustomerNotFound is returned when a customer lookup fails.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepo provides methods to create and look up customers.  The
// booking workflow only reads customers; it never mutates them.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the given DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Create inserts a new customer.  The database assigns the identifier;
// after insert the ID field of the customer will be set.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	const q = `INSERT INTO customers (fname, lname) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a customer by id.  It returns ErrCustomerNotFound
// when no row is found.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	const q = `SELECT id, fname, lname FROM customers WHERE id = ?`
	var c model.Customer
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.FirstName, &c.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Exists reports whether a customer with the given id is registered.
// A storage failure propagates as an error rather than reading as
// "not found".
func (r *CustomerRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT 1 FROM customers WHERE id = ?`
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

package handler

import "fmt"

// Field limits carried over from the registration workflow: string
// lengths are bounded per column, ship age and seat capacity are
// capped at 500.
const (
	maxShipAge   = 500
	maxShipSeats = 500
)

// checkLen validates that a string field's length lies within
// [min, max] inclusive.
func checkLen(field, v string, min, max int) error {
	if len(v) < min || len(v) > max {
		return fmt.Errorf("%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

// checkRange validates that an integer field lies within [min, max]
// inclusive.
func checkRange(field string, v, min, max int64) error {
	if v < min || v > max {
		return fmt.Errorf("%s must be between %d and %d", field, min, max)
	}
	return nil
}

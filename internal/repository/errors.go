// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the booking engine to distinguish between different
// failure scenarios instead of collapsing everything into a generic
// database error. Lookup failures always propagate as their own
// errors; a storage problem is never reported as "not found".
package repository

import "errors"

// ErrDuplicateID is returned when an insert collides with an existing
// primary key or unique constraint, such as registering a ship with an
// identifier that is already taken. Handlers should translate this
// into an HTTP 409 response.
var ErrDuplicateID = errors.New("duplicate identifier")

// ErrConflict is returned when a delete cannot be performed because of
// dependent records, such as removing a ship that still operates
// cruises. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrCapacityInconsistent is returned by the seat availability query
// when the computed headroom is negative, i.e. more tickets have been
// sold than the operating ship has seats. It signals upstream data
// corruption and is surfaced rather than silently clamped to zero.
var ErrCapacityInconsistent = errors.New("seat capacity inconsistent")

package model

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a reservation.  Stored as a
// single-character enum in the reservations table.
type Status string

const (
	// StatusWaitlisted marks a reservation created while the cruise
	// had no seats left.
	StatusWaitlisted Status = "W"
	// StatusReserved marks a reservation holding a seat, pending
	// confirmation.
	StatusReserved Status = "R"
	// StatusConfirmed is the terminal, finalized state.
	StatusConfirmed Status = "C"
)

// ParseStatus converts a raw status string into a Status.  Anything
// other than the three known enum values is rejected.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusWaitlisted, StatusReserved, StatusConfirmed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// NextStatus returns the status an existing reservation moves to when
// the customer books the same cruise again.  Promotions only ever move
// forward: Confirmed never reverts and Waitlisted never jumps straight
// to Confirmed.
//
// When seats are available: Waitlisted -> Reserved, Reserved ->
// Confirmed.  When the cruise is full only Reserved -> Confirmed is
// applied and a Waitlisted reservation stays parked; there is no
// background sweep that promotes waitlisted customers when seats free
// up later.
func NextStatus(cur Status, seatAvailable bool) Status {
	switch cur {
	case StatusWaitlisted:
		if seatAvailable {
			return StatusReserved
		}
		return StatusWaitlisted
	case StatusReserved:
		return StatusConfirmed
	default:
		return cur
	}
}

// Reservation records a customer's booking on a cruise.  At most one
// reservation exists per (customer, cruise) pair; repeat bookings
// promote the existing row's status instead of creating a new one.
//
// Fields:
//  ID         – database-generated identifier.
//  CustomerID – customer who booked.
//  CruiseID   – cruise booked onto.
//  Status     – W, R or C.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last status change.
type Reservation struct {
	ID         uint64    `json:"id"`          // reservations.id
	CustomerID uint64    `json:"customer_id"` // reservations.customer_id
	CruiseID   uint64    `json:"cruise_id"`   // reservations.cruise_id
	Status     Status    `json:"status"`      // reservations.status
	CreatedAt  time.Time `json:"created_at"`  // reservations.created_at
	UpdatedAt  time.Time `json:"updated_at"`  // reservations.updated_at
}

package model

// Customer is a person who can be booked onto cruises.  The booking
// workflow references customers but never mutates them.
type Customer struct {
	ID        uint64 `json:"id"`         // customers.id
	FirstName string `json:"first_name"` // customers.fname
	LastName  string `json:"last_name"`  // customers.lname
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingRecordedEvent is published after every booking transaction
// commits, whether it created a new reservation or promoted an
// existing one. It carries enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type BookingRecordedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	CustomerID    uint64 `json:"customer_id"`
	CruiseID      uint64 `json:"cruise_id"`
	Created       bool   `json:"created"`
	Previous      string `json:"previous_status,omitempty"`
	Status        string `json:"status"`
	RecordedAt    string `json:"recorded_at"`
}

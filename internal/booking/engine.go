// Package booking implements the reservation decision logic: given a
// customer and a cruise, decide whether a reservation already exists,
// whether to create one, and which status it carries, while keeping
// the seat-accounting invariant (available = ship seats - tickets
// sold) intact.  The whole read-decide-write sequence runs in a single
// database transaction with a row lock on the cruise, so concurrent
// bookings against the same cruise serialize instead of oversubscribing.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/cruise-booking/internal/model"
	"github.com/iliyamo/cruise-booking/internal/monitoring"
	"github.com/iliyamo/cruise-booking/internal/queue"
	"github.com/iliyamo/cruise-booking/internal/repository"
)

// Store is the persistence surface the engine drives.  Existence
// checks run outside the booking transaction; everything that touches
// seat accounting runs inside InTx.
type Store interface {
	CustomerExists(ctx context.Context, id uint64) (bool, error)
	CruiseExists(ctx context.Context, cnum uint64) (bool, error)
	// InTx runs fn inside a transaction, committing when fn returns
	// nil and rolling back otherwise.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the transactional primitives of a booking: the
// availability read locks the cruise row for the remainder of the
// transaction.
type Tx interface {
	AvailableSeats(ctx context.Context, cruiseID uint64) (int32, error)
	Reservation(ctx context.Context, customerID, cruiseID uint64) (*model.Reservation, error)
	CreateReservation(ctx context.Context, res *model.Reservation) error
	UpdateReservationStatus(ctx context.Context, id uint64, st model.Status) error
	IncrementSold(ctx context.Context, cruiseID uint64) error
}

// Publisher delivers a booking event to downstream consumers after the
// transaction has committed.  Delivery failures must not affect the
// booking itself.
type Publisher func(ctx context.Context, ev queue.BookingRecordedEvent) error

// Outcome describes what a Book call did.  Exactly one of the two
// shapes is produced: Created (a new reservation row) or an update of
// the existing row's status.  Previous is only meaningful when
// Created is false.
type Outcome struct {
	Created       bool         `json:"created"`
	ReservationID uint64       `json:"reservation_id"`
	Previous      model.Status `json:"previous_status,omitempty"`
	Status        model.Status `json:"status"`
	Available     int32        `json:"available_before"` // seat headroom observed before the decision
}

// Engine is the booking core.  It owns no SQL of its own; it drives a
// Store so the decision logic stays testable in isolation.
type Engine struct {
	store   Store
	publish Publisher // optional; nil disables event publishing
}

// NewEngine constructs an Engine.  publish may be nil.
func NewEngine(store Store, publish Publisher) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store, publish: publish}
}

// Book books the given customer onto the given cruise.
//
// With no prior reservation for the pair, a new row is created:
// Reserved while seats remain (consuming one seat), Waitlisted once
// the cruise is full.  With a prior reservation the existing row's
// status is promoted per model.NextStatus and no seat is consumed.
// Either way the caller gets back an Outcome; a validated request
// never ends with zero reservation rows for the pair.
//
// Unknown customer or cruise ids fail with
// repository.ErrCustomerNotFound / repository.ErrCruiseNotFound.  Any
// storage failure rolls back the entire sequence; partial writes (a
// reservation without its seat, or vice versa) cannot be observed.
func (e *Engine) Book(ctx context.Context, customerID, cruiseID uint64) (Outcome, error) {
	start := time.Now()

	ok, err := e.store.CustomerExists(ctx, customerID)
	if err != nil {
		return Outcome{}, fmt.Errorf("customer lookup: %w", err)
	}
	if !ok {
		return Outcome{}, fmt.Errorf("customer %d: %w", customerID, repository.ErrCustomerNotFound)
	}
	ok, err = e.store.CruiseExists(ctx, cruiseID)
	if err != nil {
		return Outcome{}, fmt.Errorf("cruise lookup: %w", err)
	}
	if !ok {
		return Outcome{}, fmt.Errorf("cruise %d: %w", cruiseID, repository.ErrCruiseNotFound)
	}

	var out Outcome
	err = e.store.InTx(ctx, func(tx Tx) error {
		available, err := tx.AvailableSeats(ctx, cruiseID)
		if err != nil {
			return fmt.Errorf("available seats: %w", err)
		}
		if available < 0 {
			// Over-sold cruise: corrupted upstream data.  The booking
			// still proceeds on the no-seats path so the customer at
			// least lands on the waitlist.
			log.Printf("booking: cruise %d over-sold, headroom %d", cruiseID, available)
			monitoring.CapacityInconsistencyObserved()
		}
		seatAvailable := available > 0

		existing, err := tx.Reservation(ctx, customerID, cruiseID)
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			st := model.StatusWaitlisted
			if seatAvailable {
				st = model.StatusReserved
			}
			res := &model.Reservation{CustomerID: customerID, CruiseID: cruiseID, Status: st}
			if err := tx.CreateReservation(ctx, res); err != nil {
				return fmt.Errorf("create reservation: %w", err)
			}
			if st == model.StatusReserved {
				// Seat consumption is atomic with reservation creation.
				if err := tx.IncrementSold(ctx, cruiseID); err != nil {
					return fmt.Errorf("increment tickets sold: %w", err)
				}
			}
			out = Outcome{Created: true, ReservationID: res.ID, Status: st, Available: available}
			return nil
		case err != nil:
			return fmt.Errorf("reservation lookup: %w", err)
		}

		next := model.NextStatus(existing.Status, seatAvailable)
		if next != existing.Status {
			if err := tx.UpdateReservationStatus(ctx, existing.ID, next); err != nil {
				return fmt.Errorf("update reservation status: %w", err)
			}
		}
		out = Outcome{
			ReservationID: existing.ID,
			Previous:      existing.Status,
			Status:        next,
			Available:     available,
		}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	monitoring.BookingRecorded(out.Created, string(out.Status), time.Since(start))
	e.publishOutcome(ctx, customerID, cruiseID, out)
	return out, nil
}

// publishOutcome emits a BookingRecordedEvent after commit.  Failures
// are logged and swallowed: the reservation is already durable.
func (e *Engine) publishOutcome(ctx context.Context, customerID, cruiseID uint64, out Outcome) {
	if e.publish == nil {
		return
	}
	ev := queue.BookingRecordedEvent{
		ReservationID: out.ReservationID,
		CustomerID:    customerID,
		CruiseID:      cruiseID,
		Created:       out.Created,
		Previous:      string(out.Previous),
		Status:        string(out.Status),
		RecordedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := e.publish(ctx, ev); err != nil {
		log.Printf("booking: publish event for reservation %d failed: %v", out.ReservationID, err)
	}
}

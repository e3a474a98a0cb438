package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cruise-booking/internal/model"
	"github.com/iliyamo/cruise-booking/internal/queue"
	"github.com/iliyamo/cruise-booking/internal/repository"
)

type pair struct{ customer, cruise uint64 }

// fakeStore is an in-memory Store with commit/rollback semantics:
// writes land in a staged copy, adopted only when the transaction
// function returns nil.
type fakeStore struct {
	mu           sync.Mutex // serializes transactions, as row locks do
	customers    map[uint64]bool
	capacity     map[uint64]int32 // operating ship seats per cruise
	sold         map[uint64]int32
	reservations map[pair]model.Reservation
	nextID       uint64

	customerLookupErr error
	cruiseLookupErr   error
	availableErr      error
	createErr         error
	updateErr         error
	incrementErr      error

	createCalls    int
	updateCalls    int
	incrementCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers:    map[uint64]bool{},
		capacity:     map[uint64]int32{},
		sold:         map[uint64]int32{},
		reservations: map[pair]model.Reservation{},
	}
}

func (f *fakeStore) CustomerExists(ctx context.Context, id uint64) (bool, error) {
	if f.customerLookupErr != nil {
		return false, f.customerLookupErr
	}
	return f.customers[id], nil
}

func (f *fakeStore) CruiseExists(ctx context.Context, cnum uint64) (bool, error) {
	if f.cruiseLookupErr != nil {
		return false, f.cruiseLookupErr
	}
	_, ok := f.capacity[cnum]
	return ok, nil
}

func (f *fakeStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	staged := &fakeTx{
		store:        f,
		sold:         map[uint64]int32{},
		reservations: map[pair]model.Reservation{},
		nextID:       f.nextID,
	}
	for k, v := range f.sold {
		staged.sold[k] = v
	}
	for k, v := range f.reservations {
		staged.reservations[k] = v
	}
	if err := fn(staged); err != nil {
		return err
	}
	f.sold = staged.sold
	f.reservations = staged.reservations
	f.nextID = staged.nextID
	return nil
}

type fakeTx struct {
	store        *fakeStore
	sold         map[uint64]int32
	reservations map[pair]model.Reservation
	nextID       uint64
}

func (t *fakeTx) AvailableSeats(ctx context.Context, cruiseID uint64) (int32, error) {
	if t.store.availableErr != nil {
		return 0, t.store.availableErr
	}
	seats, ok := t.store.capacity[cruiseID]
	if !ok {
		return 0, repository.ErrCruiseNotFound
	}
	return seats - t.sold[cruiseID], nil
}

func (t *fakeTx) Reservation(ctx context.Context, customerID, cruiseID uint64) (*model.Reservation, error) {
	res, ok := t.reservations[pair{customerID, cruiseID}]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	out := res
	return &out, nil
}

func (t *fakeTx) CreateReservation(ctx context.Context, res *model.Reservation) error {
	t.store.createCalls++
	if t.store.createErr != nil {
		return t.store.createErr
	}
	t.nextID++
	res.ID = t.nextID
	t.reservations[pair{res.CustomerID, res.CruiseID}] = *res
	return nil
}

func (t *fakeTx) UpdateReservationStatus(ctx context.Context, id uint64, st model.Status) error {
	t.store.updateCalls++
	if t.store.updateErr != nil {
		return t.store.updateErr
	}
	for k, v := range t.reservations {
		if v.ID == id {
			v.Status = st
			t.reservations[k] = v
			return nil
		}
	}
	return repository.ErrReservationNotFound
}

func (t *fakeTx) IncrementSold(ctx context.Context, cruiseID uint64) error {
	t.store.incrementCalls++
	if t.store.incrementErr != nil {
		return t.store.incrementErr
	}
	t.sold[cruiseID]++
	return nil
}

func newTestEngine(f *fakeStore) *Engine { return NewEngine(f, nil) }

func TestBook_CreatesReservedWhileSeatsRemain(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 3

	out, err := newTestEngine(f).Book(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.True(t, out.Created)
	assert.Equal(t, model.StatusReserved, out.Status)
	assert.Equal(t, int32(3), out.Available)
	assert.Equal(t, int32(1), f.sold[10])
	assert.Len(t, f.reservations, 1)
}

func TestBook_CreatesWaitlistedWhenFull(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 2
	f.sold[10] = 2

	out, err := newTestEngine(f).Book(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.True(t, out.Created)
	assert.Equal(t, model.StatusWaitlisted, out.Status)
	assert.Equal(t, int32(2), f.sold[10], "waitlisted booking must not consume a seat")
}

func TestBook_CreatesWaitlistedOnNegativeHeadroom(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 2
	f.sold[10] = 5 // over-sold upstream

	out, err := newTestEngine(f).Book(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.True(t, out.Created)
	assert.Equal(t, model.StatusWaitlisted, out.Status)
	assert.Equal(t, int32(-3), out.Available)
	assert.Equal(t, int32(5), f.sold[10])
}

func TestBook_RepeatCallUpdatesInsteadOfCreating(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 5

	eng := newTestEngine(f)
	first, err := eng.Book(context.Background(), 1, 10)
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := eng.Book(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, model.StatusReserved, second.Previous)
	assert.Equal(t, model.StatusConfirmed, second.Status)
	assert.Len(t, f.reservations, 1, "repeat booking must never create a second row")
	assert.Equal(t, int32(1), f.sold[10], "promotion must not consume another seat")
}

func TestBook_ConfirmedIsTerminal(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 5
	f.nextID = 7
	f.reservations[pair{1, 10}] = model.Reservation{ID: 7, CustomerID: 1, CruiseID: 10, Status: model.StatusConfirmed}

	out, err := newTestEngine(f).Book(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.False(t, out.Created)
	assert.Equal(t, model.StatusConfirmed, out.Status)
	assert.Zero(t, f.updateCalls, "terminal status requires no write")
}

func TestBook_WaitlistedStaysParkedWhenFull(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 1
	f.sold[10] = 1
	f.nextID = 3
	f.reservations[pair{1, 10}] = model.Reservation{ID: 3, CustomerID: 1, CruiseID: 10, Status: model.StatusWaitlisted}

	out, err := newTestEngine(f).Book(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, model.StatusWaitlisted, out.Status)
	assert.Zero(t, f.updateCalls)
}

func TestBook_WaitlistedPromotesWhenSeatsFreeUp(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 2
	f.sold[10] = 1
	f.nextID = 3
	f.reservations[pair{1, 10}] = model.Reservation{ID: 3, CustomerID: 1, CruiseID: 10, Status: model.StatusWaitlisted}

	out, err := newTestEngine(f).Book(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, model.StatusWaitlisted, out.Previous)
	assert.Equal(t, model.StatusReserved, out.Status)
	assert.Equal(t, int32(1), f.sold[10], "promotion never touches tickets sold")
}

func TestBook_TwoSeatExample(t *testing.T) {
	f := newFakeStore()
	f.customers[1], f.customers[2], f.customers[3] = true, true, true
	f.capacity[10] = 2
	eng := newTestEngine(f)
	ctx := context.Background()

	out, err := eng.Book(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, model.StatusReserved, out.Status)
	assert.Equal(t, int32(1), f.sold[10])

	out, err = eng.Book(ctx, 2, 10)
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, model.StatusReserved, out.Status)
	assert.Equal(t, int32(2), f.sold[10])

	out, err = eng.Book(ctx, 3, 10)
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, model.StatusWaitlisted, out.Status)
	assert.Equal(t, int32(2), f.sold[10])

	out, err = eng.Book(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, model.StatusReserved, out.Previous)
	assert.Equal(t, model.StatusConfirmed, out.Status)
	assert.Equal(t, int32(2), f.sold[10])
}

func TestBook_ConcurrentRequestsFillSeatsExactly(t *testing.T) {
	const seats = 8
	const requests = 2 * seats

	f := newFakeStore()
	f.capacity[10] = seats
	for c := uint64(1); c <= requests; c++ {
		f.customers[c] = true
	}
	eng := newTestEngine(f)

	var wg sync.WaitGroup
	errs := make([]error, requests)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = eng.Book(context.Background(), uint64(i+1), 10)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "booking for customer %d", i+1)
	}

	reserved, waitlisted := 0, 0
	for _, res := range f.reservations {
		switch res.Status {
		case model.StatusReserved:
			reserved++
		case model.StatusWaitlisted:
			waitlisted++
		}
	}
	assert.Equal(t, seats, reserved, "every seat is handed out exactly once")
	assert.Equal(t, requests-seats, waitlisted, "everyone else lands on the waitlist")
	assert.Equal(t, int32(seats), f.sold[10], "tickets sold never exceeds capacity")
}

func TestBook_UnknownCustomer(t *testing.T) {
	f := newFakeStore()
	f.capacity[10] = 2

	_, err := newTestEngine(f).Book(context.Background(), 99, 10)
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
	assert.Zero(t, f.createCalls)
}

func TestBook_UnknownCruise(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true

	_, err := newTestEngine(f).Book(context.Background(), 1, 99)
	assert.ErrorIs(t, err, repository.ErrCruiseNotFound)
	assert.Zero(t, f.createCalls)
}

func TestBook_LookupFailureIsNotNotFound(t *testing.T) {
	f := newFakeStore()
	f.capacity[10] = 2
	f.customerLookupErr = errors.New("connection reset")

	_, err := newTestEngine(f).Book(context.Background(), 1, 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrCustomerNotFound)
	assert.ErrorContains(t, err, "connection reset")
}

func TestBook_StorageErrorRollsBackEverything(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 2
	f.incrementErr = errors.New("deadlock")

	_, err := newTestEngine(f).Book(context.Background(), 1, 10)
	require.Error(t, err)

	assert.Empty(t, f.reservations, "failed booking must not leave a reservation behind")
	assert.Equal(t, int32(0), f.sold[10])
}

func TestBook_PublishesEventAfterCommit(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 2

	var got []queue.BookingRecordedEvent
	eng := NewEngine(f, func(ctx context.Context, ev queue.BookingRecordedEvent) error {
		got = append(got, ev)
		return nil
	})

	out, err := eng.Book(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, out.ReservationID, got[0].ReservationID)
	assert.Equal(t, uint64(1), got[0].CustomerID)
	assert.Equal(t, uint64(10), got[0].CruiseID)
	assert.True(t, got[0].Created)
	assert.Equal(t, "R", got[0].Status)
}

func TestBook_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := newFakeStore()
	f.customers[1] = true
	f.capacity[10] = 2

	eng := NewEngine(f, func(ctx context.Context, ev queue.BookingRecordedEvent) error {
		return errors.New("broker down")
	})

	out, err := eng.Book(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, out.Created)
}

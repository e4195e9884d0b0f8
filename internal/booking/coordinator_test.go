package booking

import (
    "context"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// testClock is a manually advanced clock so TTL behavior is
// deterministic without sleeping.
type testClock struct {
    mu  sync.Mutex
    cur time.Time
}

func newTestClock(start time.Time) *testClock { return &testClock{cur: start} }

func (c *testClock) Now() time.Time {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.cur
}

func (c *testClock) Advance(d time.Duration) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.cur = c.cur.Add(d)
}

var testStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// newTestCoordinator seeds a flight with two economy seats (7A
// window, 7B aisle) and one business seat (2A window).
func newTestCoordinator(t *testing.T) (*Coordinator, *MemoryStore, *testClock) {
    t.Helper()
    store := NewMemoryStore()
    clock := newTestClock(testStart)

    store.AddRoute(model.Route{
        ID:                1,
        BaseEconomyCents:  50000,
        BaseBusinessCents: 120000,
        BaseFirstCents:    300000,
        IsActive:          true,
    })
    store.AddFlight(model.Flight{
        ID:                 1,
        FlightNumber:       "IA204",
        RouteID:            1,
        Status:             model.FlightScheduled,
        DepartureAt:        testStart.Add(48 * time.Hour),
        ArrivalAt:          testStart.Add(51 * time.Hour),
        AvailableEconomy:   2,
        AvailableBusiness:  1,
        PriceMultiplierBps: DefaultMultiplierBps,
    })
    store.AddSeat(model.Seat{FlightID: 1, SeatNumber: "7A", Class: model.SeatClassEconomy, IsWindow: true, SurchargeCents: WindowSurchargeCents})
    store.AddSeat(model.Seat{FlightID: 1, SeatNumber: "7B", Class: model.SeatClassEconomy, IsAisle: true, SurchargeCents: AisleSurchargeCents})
    store.AddSeat(model.Seat{FlightID: 1, SeatNumber: "2A", Class: model.SeatClassBusiness, IsWindow: true, SurchargeCents: WindowSurchargeCents})

    return NewCoordinator(store, nil, clock.Now), store, clock
}

// requireInvariant checks available+held+confirmed == capacity for a
// cabin class.
func requireInvariant(t *testing.T, store *MemoryStore, class model.SeatClass, capacity uint32) {
    t.Helper()
    ctx := context.Background()
    flight, err := store.GetFlight(ctx, 1)
    require.NoError(t, err)
    seats, err := store.ListSeats(ctx, 1, &class)
    require.NoError(t, err)
    var held, confirmed uint32
    for _, s := range seats {
        switch s.Status {
        case model.SeatHeld:
            held++
        case model.SeatConfirmed:
            confirmed++
        }
    }
    require.Equal(t, capacity, flight.AvailableFor(class)+held+confirmed,
        "class %s: available=%d held=%d confirmed=%d", class, flight.AvailableFor(class), held, confirmed)
}

func TestHoldThenConfirm(t *testing.T) {
    coord, store, _ := newTestCoordinator(t)
    ctx := context.Background()

    res, err := coord.Hold(ctx, 1, "7A", 42, 5*time.Minute)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationHeld, res.Status)
    assert.Equal(t, testStart.Add(5*time.Minute), res.ExpiresAt)

    flight, err := store.GetFlight(ctx, 1)
    require.NoError(t, err)
    assert.Equal(t, uint32(1), flight.AvailableEconomy)
    requireInvariant(t, store, model.SeatClassEconomy, 2)

    confirmed, err := coord.Confirm(ctx, res.ID)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationConfirmed, confirmed.Status)
    // base 50000 * 1.0 + window surcharge
    assert.Equal(t, uint32(51000), confirmed.PriceCents)
    requireInvariant(t, store, model.SeatClassEconomy, 2)

    seat, err := store.GetSeat(ctx, 1, "7A")
    require.NoError(t, err)
    assert.Equal(t, model.SeatConfirmed, seat.Status)
}

func TestConfirmIsIdempotent(t *testing.T) {
    coord, _, _ := newTestCoordinator(t)
    ctx := context.Background()

    res, err := coord.Hold(ctx, 1, "7B", 7, 5*time.Minute)
    require.NoError(t, err)
    first, err := coord.Confirm(ctx, res.ID)
    require.NoError(t, err)
    second, err := coord.Confirm(ctx, res.ID)
    require.NoError(t, err)
    assert.Equal(t, first.PriceCents, second.PriceCents)
    assert.Equal(t, model.ReservationConfirmed, second.Status)
}

func TestConcurrentHoldsSingleWinner(t *testing.T) {
    coord, store, _ := newTestCoordinator(t)
    ctx := context.Background()

    const attempts = 16
    var wg sync.WaitGroup
    errs := make([]error, attempts)
    for i := 0; i < attempts; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = coord.Hold(ctx, 1, "7A", uint64(i+1), 5*time.Minute)
        }(i)
    }
    wg.Wait()

    wins := 0
    for _, err := range errs {
        if err == nil {
            wins++
        } else {
            assert.ErrorIs(t, err, ErrSeatUnavailable)
        }
    }
    assert.Equal(t, 1, wins)
    requireInvariant(t, store, model.SeatClassEconomy, 2)
}

func TestHoldRejectsUnbookableFlight(t *testing.T) {
    coord, store, _ := newTestCoordinator(t)
    ctx := context.Background()

    flight, err := store.GetFlight(ctx, 1)
    require.NoError(t, err)
    flight.Status = model.FlightDeparted
    store.AddFlight(flight)

    _, err = coord.Hold(ctx, 1, "7A", 1, 5*time.Minute)
    assert.ErrorIs(t, err, ErrFlightNotBookable)
}

func TestHoldRejectsPastDeparture(t *testing.T) {
    coord, _, clock := newTestCoordinator(t)
    ctx := context.Background()

    clock.Advance(72 * time.Hour) // beyond departure
    _, err := coord.Hold(ctx, 1, "7A", 1, 5*time.Minute)
    assert.ErrorIs(t, err, ErrFlightNotBookable)
}

func TestConfirmAfterExpiryReleasesSeat(t *testing.T) {
    coord, store, clock := newTestCoordinator(t)
    ctx := context.Background()

    res, err := coord.Hold(ctx, 1, "7A", 5, 5*time.Minute)
    require.NoError(t, err)

    // TTL elapses with no sweep run; lazy expiry at confirm must
    // still reject and release.
    clock.Advance(5 * time.Minute)
    _, err = coord.Confirm(ctx, res.ID)
    assert.ErrorIs(t, err, ErrExpired)

    seat, err := store.GetSeat(ctx, 1, "7A")
    require.NoError(t, err)
    assert.Equal(t, model.SeatAvailable, seat.Status)
    requireInvariant(t, store, model.SeatClassEconomy, 2)

    // Seat is immediately holdable by someone else.
    _, err = coord.Hold(ctx, 1, "7A", 6, 5*time.Minute)
    require.NoError(t, err)
}

func TestCancelIsIdempotent(t *testing.T) {
    coord, store, _ := newTestCoordinator(t)
    ctx := context.Background()

    res, err := coord.Hold(ctx, 1, "2A", 9, 5*time.Minute)
    require.NoError(t, err)

    require.NoError(t, coord.Cancel(ctx, res.ID, 9))
    require.NoError(t, coord.Cancel(ctx, res.ID, 9))

    flight, err := store.GetFlight(ctx, 1)
    require.NoError(t, err)
    // restored exactly once
    assert.Equal(t, uint32(1), flight.AvailableBusiness)
    requireInvariant(t, store, model.SeatClassBusiness, 1)
}

func TestCancelConfirmedReservation(t *testing.T) {
    coord, store, _ := newTestCoordinator(t)
    ctx := context.Background()

    res, err := coord.Hold(ctx, 1, "7B", 3, 5*time.Minute)
    require.NoError(t, err)
    _, err = coord.Confirm(ctx, res.ID)
    require.NoError(t, err)

    require.NoError(t, coord.Cancel(ctx, res.ID, 3))
    seat, err := store.GetSeat(ctx, 1, "7B")
    require.NoError(t, err)
    assert.Equal(t, model.SeatAvailable, seat.Status)
    requireInvariant(t, store, model.SeatClassEconomy, 2)
}

func TestSweepRacesUserCancel(t *testing.T) {
    coord, store, clock := newTestCoordinator(t)
    ctx := context.Background()

    res, err := coord.Hold(ctx, 1, "7A", 11, 5*time.Minute)
    require.NoError(t, err)
    clock.Advance(6 * time.Minute)

    var wg sync.WaitGroup
    wg.Add(2)
    go func() {
        defer wg.Done()
        _, _ = coord.ExpireStaleHolds(ctx, clock.Now())
    }()
    go func() {
        defer wg.Done()
        _ = coord.Cancel(ctx, res.ID, 11)
    }()
    wg.Wait()

    // Whoever won the CAS, the seat came back exactly once.
    flight, err := store.GetFlight(ctx, 1)
    require.NoError(t, err)
    assert.Equal(t, uint32(2), flight.AvailableEconomy)
    requireInvariant(t, store, model.SeatClassEconomy, 2)

    got, err := coord.Reservation(ctx, res.ID)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationCancelled, got.Status)
}

func TestExpireStaleHoldsSkipsConfirmed(t *testing.T) {
    coord, _, clock := newTestCoordinator(t)
    ctx := context.Background()

    held, err := coord.Hold(ctx, 1, "7A", 1, 5*time.Minute)
    require.NoError(t, err)
    confirmedRes, err := coord.Hold(ctx, 1, "7B", 2, 5*time.Minute)
    require.NoError(t, err)
    _, err = coord.Confirm(ctx, confirmedRes.ID)
    require.NoError(t, err)

    clock.Advance(10 * time.Minute)
    released, err := coord.ExpireStaleHolds(ctx, clock.Now())
    require.NoError(t, err)
    assert.Equal(t, 1, released)

    gotHeld, err := coord.Reservation(ctx, held.ID)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationCancelled, gotHeld.Status)
    gotConfirmed, err := coord.Reservation(ctx, confirmedRes.ID)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationConfirmed, gotConfirmed.Status)
}

func TestSoldOutClassThenFreedByCancel(t *testing.T) {
    coord, store, _ := newTestCoordinator(t)
    ctx := context.Background()

    resA, err := coord.Hold(ctx, 1, "7A", 1, 5*time.Minute)
    require.NoError(t, err)
    _, err = coord.Hold(ctx, 1, "7B", 2, 5*time.Minute)
    require.NoError(t, err)

    flight, err := store.GetFlight(ctx, 1)
    require.NoError(t, err)
    assert.Equal(t, uint32(0), flight.AvailableEconomy)

    // Both economy seats taken; a third hold on either seat fails.
    _, err = coord.Hold(ctx, 1, "7A", 3, 5*time.Minute)
    assert.ErrorIs(t, err, ErrSeatUnavailable)

    require.NoError(t, coord.Cancel(ctx, resA.ID, 1))
    _, err = coord.Hold(ctx, 1, "7A", 3, 5*time.Minute)
    require.NoError(t, err)
    requireInvariant(t, store, model.SeatClassEconomy, 2)
}

func TestAvailabilityView(t *testing.T) {
    coord, _, _ := newTestCoordinator(t)
    ctx := context.Background()

    res, err := coord.Hold(ctx, 1, "7A", 1, 5*time.Minute)
    require.NoError(t, err)
    _, err = coord.Confirm(ctx, res.ID)
    require.NoError(t, err)
    _, err = coord.Hold(ctx, 1, "7B", 2, 5*time.Minute)
    require.NoError(t, err)

    av, err := coord.Availability(ctx, 1)
    require.NoError(t, err)
    require.Len(t, av.Classes, 3)
    byClass := map[model.SeatClass]ClassAvailability{}
    for _, ca := range av.Classes {
        byClass[ca.Class] = ca
    }
    assert.Equal(t, uint32(0), byClass[model.SeatClassEconomy].Available)
    assert.Equal(t, uint32(1), byClass[model.SeatClassEconomy].Held)
    assert.Equal(t, uint32(1), byClass[model.SeatClassEconomy].Confirmed)
    assert.Equal(t, uint32(1), byClass[model.SeatClassBusiness].Available)
    assert.Len(t, av.Seats, 3)
}

func TestHoldRejectsNonPositiveTTL(t *testing.T) {
    coord, _, _ := newTestCoordinator(t)
    _, err := coord.Hold(context.Background(), 1, "7A", 1, 0)
    assert.Error(t, err)
}

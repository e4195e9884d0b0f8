package booking

import (
    "context"
    "time"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// Store is the inventory store consumed by the coordinator: the
// durable source of truth for flights, seats and reservations.  Two
// implementations exist, SQLStore over MySQL and MemoryStore for
// tests and development.
//
// Mutating methods are only invoked by the coordinator, never by
// request handlers, to preserve the counter/seat-flag consistency
// invariant: a seat counts toward the available counter of its class
// iff its status is AVAILABLE.
//
// The three state-changing methods are atomic conditional updates.
// They succeed only when the current state matches the expected
// value, so two concurrent transitions for the same seat cannot both
// apply even without the coordinator's per-seat lock.
type Store interface {
    // GetFlight returns the flight or ErrFlightNotFound.
    GetFlight(ctx context.Context, flightID uint64) (model.Flight, error)

    // GetRoute returns the route the flight is operating.  Used for
    // fare recomputation at confirm time.
    GetRoute(ctx context.Context, routeID uint64) (model.Route, error)

    // GetSeat returns the seat or ErrSeatNotFound.
    GetSeat(ctx context.Context, flightID uint64, seatNumber string) (model.Seat, error)

    // ListSeats returns the flight's seats ordered by seat number,
    // optionally filtered by cabin class.
    ListSeats(ctx context.Context, flightID uint64, class *model.SeatClass) ([]model.Seat, error)

    // CreateHold atomically flips the seat AVAILABLE→HELD, decrements
    // the class counter and inserts the reservation in HELD state.
    // Returns ErrSeatUnavailable when the seat flip does not apply
    // and ErrCapacityExceeded when the counter is already zero.
    CreateHold(ctx context.Context, res *model.Reservation) error

    // GetReservation returns the reservation or ErrReservationNotFound.
    GetReservation(ctx context.Context, id string) (model.Reservation, error)

    // ConfirmReservation moves the reservation HELD→CONFIRMED and
    // its seat HELD→CONFIRMED, fixing the price.  The availability
    // counter is untouched: held and confirmed seats are equally
    // unavailable.  Returns false when the reservation was not HELD.
    ConfirmReservation(ctx context.Context, id string, priceCents uint32) (bool, error)

    // ReleaseReservation moves the reservation from the expected
    // status to CANCELLED, returns the seat to AVAILABLE and
    // increments the class counter.  Returns false when the status
    // did not match, in which case no side effect applied.
    ReleaseReservation(ctx context.Context, id string, from model.ReservationStatus) (bool, error)

    // ListExpiredHolds returns up to limit HELD reservations whose
    // TTL elapsed at or before now, oldest first.
    ListExpiredHolds(ctx context.Context, now time.Time, limit int) ([]model.Reservation, error)
}

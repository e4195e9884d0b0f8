// Package booking implements the reservation coordinator: the single
// component allowed to mutate seat availability and per-class
// counters.  It serializes conflicting booking attempts per seat so
// that no seat is double-sold and counters never go negative or
// exceed aircraft capacity.
package booking

import "errors"

// Sentinel errors returned by the coordinator and its stores.
// Handlers translate these into HTTP status codes with errors.Is.
var (
    // ErrFlightNotFound is returned when the flight does not exist.
    ErrFlightNotFound = errors.New("flight not found")

    // ErrSeatNotFound is returned when the seat number does not exist
    // on the flight.
    ErrSeatNotFound = errors.New("seat not found")

    // ErrRouteNotFound is returned when a flight references a route
    // that cannot be loaded; it indicates broken referential data.
    ErrRouteNotFound = errors.New("route not found")

    // ErrReservationNotFound is returned when no reservation exists
    // for the given id.
    ErrReservationNotFound = errors.New("reservation not found")

    // ErrSeatUnavailable is returned when a hold is attempted on a
    // seat that is already held or confirmed.  Hold never queues; it
    // fails fast with this error.
    ErrSeatUnavailable = errors.New("seat unavailable")

    // ErrFlightNotBookable is returned when the flight status does
    // not admit new holds or the departure time has passed.
    ErrFlightNotBookable = errors.New("flight not bookable")

    // ErrCapacityExceeded is returned when a hold would drive a
    // per-class availability counter negative.  Seeing this with a
    // free seat indicates a consistency bug, never auto-repaired.
    ErrCapacityExceeded = errors.New("class capacity exceeded")

    // ErrExpired is returned when confirming a hold whose TTL has
    // elapsed, even before the expiry sweep has run.
    ErrExpired = errors.New("hold expired")

    // ErrInvalidState is returned when an operation is not valid for
    // the reservation's current status, such as confirming a
    // cancelled reservation.
    ErrInvalidState = errors.New("operation invalid for current state")
)

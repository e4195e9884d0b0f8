package model

import "time"

// ReservationStatus enumerates the states of a reservation.  A
// reservation starts HELD and moves exactly once to CONFIRMED or
// CANCELLED; CANCELLED and CONFIRMED never revert.  All transitions
// are compare-and-swap operations on this column so that a user
// cancel and the expiry sweep racing on the same reservation resolve
// to a single winner.
type ReservationStatus string

const (
    ReservationHeld      ReservationStatus = "HELD"
    ReservationConfirmed ReservationStatus = "CONFIRMED"
    ReservationCancelled ReservationStatus = "CANCELLED"
)

// ParseReservationStatus converts a raw column value into a
// ReservationStatus.  The second return value is false for unknown
// inputs.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
    switch ReservationStatus(s) {
    case ReservationHeld, ReservationConfirmed, ReservationCancelled:
        return ReservationStatus(s), true
    }
    return "", false
}

// Reservation is a user's claim on exactly one seat of one flight.
// It references the flight and seat, it does not own them.  At most
// one non-cancelled reservation exists per seat at any time; the
// coordinator enforces this through the seat status flip.
//
// Fields:
//  ID         – public UUID identifier returned to clients.
//  UserID     – owner of the reservation.
//  FlightID   – flight being booked.
//  SeatID     – seat being booked.
//  SeatNumber – denormalized seat label for responses and events.
//  Class      – denormalized cabin class of the seat.
//  Status     – see ReservationStatus.
//  PriceCents – final price, fixed server-side at confirm time.
//  ExpiresAt  – when a HELD reservation lapses.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
    ID         string            // reservations.id (uuid)
    UserID     uint64            // reservations.user_id
    FlightID   uint64            // reservations.flight_id
    SeatID     uint64            // reservations.seat_id
    SeatNumber string            // reservations.seat_number
    Class      SeatClass         // reservations.class
    Status     ReservationStatus // reservations.status
    PriceCents uint32            // reservations.price_cents
    ExpiresAt  time.Time         // reservations.expires_at
    CreatedAt  time.Time         // reservations.created_at
    UpdatedAt  time.Time         // reservations.updated_at
}

// Expired reports whether a held reservation has passed its TTL at
// the supplied instant.  Only HELD reservations expire.
func (r Reservation) Expired(now time.Time) bool {
    return r.Status == ReservationHeld && !now.Before(r.ExpiresAt)
}

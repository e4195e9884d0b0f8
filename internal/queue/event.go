// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation is
// successfully confirmed.  It carries enough context for downstream
// consumers to notify the passenger or feed analytics without
// querying the primary database.  Delivery is best-effort and
// at-most-once; confirmation never waits on the broker.
type ReservationConfirmedEvent struct {
    ReservationID string `json:"reservation_id"`
    UserID        uint64 `json:"user_id"`
    UserEmail     string `json:"user_email"`
    FlightID      uint64 `json:"flight_id"`
    FlightNumber  string `json:"flight_number"`
    Origin        string `json:"origin"`
    Destination   string `json:"destination"`
    DepartureAt   string `json:"departure_at"`
    SeatNumber    string `json:"seat_number"`
    Class         string `json:"class"`
    PriceCents    uint32 `json:"price_cents"`
    ConfirmedAt   string `json:"confirmed_at"`
}

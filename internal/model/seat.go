package model

import "time"

// SeatClass enumerates the cabin classes sold on a flight.
type SeatClass string

const (
    SeatClassEconomy  SeatClass = "ECONOMY"
    SeatClassBusiness SeatClass = "BUSINESS"
    SeatClassFirst    SeatClass = "FIRST"
)

// ParseSeatClass converts a raw value into a SeatClass.  The second
// return value is false for unknown inputs.
func ParseSeatClass(s string) (SeatClass, bool) {
    switch SeatClass(s) {
    case SeatClassEconomy, SeatClassBusiness, SeatClassFirst:
        return SeatClass(s), true
    }
    return "", false
}

// SeatStatus enumerates the availability states of a seat on a flight.
// A seat moves AVAILABLE → HELD → (CONFIRMED | back to AVAILABLE); no
// transition skips a state and the coordinator serializes them per
// seat.  A seat counts toward its flight's per-class availability
// counter exactly when its status is AVAILABLE.
type SeatStatus string

const (
    SeatAvailable SeatStatus = "AVAILABLE"
    SeatHeld      SeatStatus = "HELD"
    SeatConfirmed SeatStatus = "CONFIRMED"
)

// Seat is a physical seat on one flight.  Seats are owned by their
// flight and cascade-deleted with it.  SeatNumber is unique within
// the flight.
//
// Fields:
//  ID             – primary key identifier.
//  FlightID       – flight this seat belongs to.
//  SeatNumber     – label unique per flight (e.g. "12C").
//  Class          – cabin class of the seat.
//  Status         – availability state, see SeatStatus.
//  IsWindow       – window seat flag.
//  IsAisle        – aisle seat flag.
//  SurchargeCents – seat-specific surcharge added to the fare.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Seat struct {
    ID             uint64     // seats.id
    FlightID       uint64     // seats.flight_id
    SeatNumber     string     // seats.seat_number
    Class          SeatClass  // seats.class
    Status         SeatStatus // seats.status
    IsWindow       bool       // seats.is_window
    IsAisle        bool       // seats.is_aisle
    SurchargeCents uint32     // seats.surcharge_cents
    CreatedAt      time.Time  // seats.created_at
    UpdatedAt      time.Time  // seats.updated_at
}

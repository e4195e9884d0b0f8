package model

import (
    "errors"
    "time"
)

// ErrSeatCountMismatch is returned by Aircraft.Validate when the
// per-class seat counts do not add up to the declared total.
var ErrSeatCountMismatch = errors.New("economy+business+first seats must equal total seats")

// Aircraft describes an airframe and its cabin configuration.  The
// per-class counts are the capacity ceiling for every flight operated
// by this aircraft: seats are seeded from them when a flight is
// scheduled and availability counters may never exceed them.
//
// Fields:
//  ID            – primary key identifier.
//  TailNumber    – unique registration (e.g. "TC-JRE").
//  Model         – airframe model (e.g. "A321neo").
//  Manufacturer  – airframe manufacturer.
//  TotalSeats    – total seat count; must equal the sum of the classes.
//  EconomySeats  – economy cabin capacity.
//  BusinessSeats – business cabin capacity.
//  FirstSeats    – first-class cabin capacity.
//  IsActive      – whether the aircraft may be scheduled.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Aircraft struct {
    ID            uint64    // aircraft.id
    TailNumber    string    // aircraft.tail_number
    Model         string    // aircraft.model
    Manufacturer  string    // aircraft.manufacturer
    TotalSeats    uint32    // aircraft.total_seats
    EconomySeats  uint32    // aircraft.economy_seats
    BusinessSeats uint32    // aircraft.business_seats
    FirstSeats    uint32    // aircraft.first_seats
    IsActive      bool      // aircraft.is_active
    CreatedAt     time.Time // aircraft.created_at
    UpdatedAt     time.Time // aircraft.updated_at
}

// Validate checks the cabin arithmetic invariant.
func (a Aircraft) Validate() error {
    if a.EconomySeats+a.BusinessSeats+a.FirstSeats != a.TotalSeats {
        return ErrSeatCountMismatch
    }
    return nil
}

// CapacityFor returns the configured capacity of a cabin class.
func (a Aircraft) CapacityFor(class SeatClass) uint32 {
    switch class {
    case SeatClassBusiness:
        return a.BusinessSeats
    case SeatClassFirst:
        return a.FirstSeats
    default:
        return a.EconomySeats
    }
}

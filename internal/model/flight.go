package model

import "time"

// FlightStatus enumerates the lifecycle states of a flight.  Values
// are stored as upper-case strings in the flights.status column.
type FlightStatus string

const (
    FlightScheduled FlightStatus = "SCHEDULED"
    FlightBoarding  FlightStatus = "BOARDING"
    FlightDeparted  FlightStatus = "DEPARTED"
    FlightArrived   FlightStatus = "ARRIVED"
    FlightCancelled FlightStatus = "CANCELLED"
    FlightDelayed   FlightStatus = "DELAYED"
)

// ParseFlightStatus converts a raw column value into a FlightStatus.
// The second return value is false for unknown inputs.
func ParseFlightStatus(s string) (FlightStatus, bool) {
    switch FlightStatus(s) {
    case FlightScheduled, FlightBoarding, FlightDeparted, FlightArrived, FlightCancelled, FlightDelayed:
        return FlightStatus(s), true
    }
    return "", false
}

// Bookable reports whether seats on a flight in this status may be
// held.  Only scheduled and boarding flights accept new holds; the
// departure-time check is applied separately by the coordinator.
func (s FlightStatus) Bookable() bool {
    return s == FlightScheduled || s == FlightBoarding
}

// CanTransitionTo reports whether the status machine allows moving
// from s to next.  Transitions are one-directional
// (scheduled → boarding → departed → arrived) with two exceptions:
// delayed and scheduled may flip back and forth, and any pre-departure
// state may be cancelled.  Terminal states accept nothing.
func (s FlightStatus) CanTransitionTo(next FlightStatus) bool {
    if s == next {
        return false
    }
    switch s {
    case FlightScheduled:
        return next == FlightBoarding || next == FlightDelayed || next == FlightCancelled
    case FlightDelayed:
        return next == FlightScheduled || next == FlightBoarding || next == FlightCancelled
    case FlightBoarding:
        return next == FlightDeparted || next == FlightDelayed || next == FlightCancelled
    case FlightDeparted:
        return next == FlightArrived
    case FlightArrived, FlightCancelled:
        return false
    }
    return false
}

// Flight is a scheduled operation of an aircraft over a route.  The
// per-class availability counters are the denormalized heart of the
// inventory model: they are seeded to the aircraft capacity when the
// flight is created and afterwards mutated only by the reservation
// coordinator, in lockstep with individual seat status flips.
//
// Fields:
//  ID                 – primary key identifier.
//  FlightNumber       – unique flight designator (e.g. "IA204").
//  RouteID            – route being flown.
//  AircraftID         – aircraft operating the flight.
//  DepartureAt        – scheduled departure (UTC); must precede ArrivalAt.
//  ArrivalAt          – scheduled arrival (UTC).
//  Status             – lifecycle state, see FlightStatus.
//  AvailableEconomy   – economy seats currently available.
//  AvailableBusiness  – business seats currently available.
//  AvailableFirst     – first-class seats currently available.
//  PriceMultiplierBps – fare multiplier in basis points (10000 = 1.0x).
//  Gate               – departure gate, when assigned.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Flight struct {
    ID                 uint64       // flights.id
    FlightNumber       string       // flights.flight_number
    RouteID            uint64       // flights.route_id
    AircraftID         uint64       // flights.aircraft_id
    DepartureAt        time.Time    // flights.departure_at
    ArrivalAt          time.Time    // flights.arrival_at
    Status             FlightStatus // flights.status
    AvailableEconomy   uint32       // flights.available_economy
    AvailableBusiness  uint32       // flights.available_business
    AvailableFirst     uint32       // flights.available_first
    PriceMultiplierBps uint32       // flights.price_multiplier_bps
    Gate               *string      // flights.gate (nullable)
    CreatedAt          time.Time    // flights.created_at
    UpdatedAt          time.Time    // flights.updated_at
}

// AvailableFor returns the availability counter for a cabin class.
func (f Flight) AvailableFor(class SeatClass) uint32 {
    switch class {
    case SeatClassBusiness:
        return f.AvailableBusiness
    case SeatClassFirst:
        return f.AvailableFirst
    default:
        return f.AvailableEconomy
    }
}

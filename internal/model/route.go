package model

import "time"

// Route is an ordered pair of airports flown by the airline, together
// with the base fare per cabin class.  Origin and destination must be
// different airports; the repository enforces this on insert and the
// handler validates before calling.
//
// Fields:
//  ID                   – primary key identifier.
//  OriginAirportID      – airport the route departs from.
//  DestinationAirportID – airport the route arrives at.
//  DistanceKM           – great-circle distance in kilometres.
//  DurationMin          – estimated flight duration in minutes.
//  BaseEconomyCents     – base economy fare in cents.
//  BaseBusinessCents    – base business fare in cents.
//  BaseFirstCents       – base first-class fare in cents.
//  IsActive             – whether new flights may be scheduled on it.
//  CreatedAt            – creation timestamp.
type Route struct {
    ID                   uint64    // routes.id
    OriginAirportID      uint64    // routes.origin_airport_id
    DestinationAirportID uint64    // routes.destination_airport_id
    DistanceKM           uint32    // routes.distance_km
    DurationMin          uint32    // routes.duration_min
    BaseEconomyCents     uint32    // routes.base_economy_cents
    BaseBusinessCents    uint32    // routes.base_business_cents
    BaseFirstCents       uint32    // routes.base_first_cents
    IsActive             bool      // routes.is_active
    CreatedAt            time.Time // routes.created_at
}

// BasePriceCents returns the base fare for the given cabin class.
func (r Route) BasePriceCents(class SeatClass) uint32 {
    switch class {
    case SeatClassBusiness:
        return r.BaseBusinessCents
    case SeatClassFirst:
        return r.BaseFirstCents
    default:
        return r.BaseEconomyCents
    }
}

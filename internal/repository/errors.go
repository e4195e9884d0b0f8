// Package repository defines the data access layer over MySQL along
// with the sentinel errors reused across repositories.  Handlers
// branch on these sentinels to pick status codes instead of matching
// on driver error strings.
package repository

import "errors"

// Not-found sentinels, one per aggregate.  Handlers translate them
// into HTTP 404 responses.
var (
    ErrAirportNotFound  = errors.New("airport not found")
    ErrRouteNotFound    = errors.New("route not found")
    ErrAircraftNotFound = errors.New("aircraft not found")
    ErrFlightNotFound   = errors.New("flight not found")
)

// Uniqueness sentinels returned when an insert collides with an
// existing row.
var (
    ErrAirportCodeExists  = errors.New("airport code already exists")
    ErrFlightNumberExists = errors.New("flight number already exists")
    ErrTailNumberExists   = errors.New("tail number already exists")
)

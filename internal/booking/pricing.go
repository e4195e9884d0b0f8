package booking

import "github.com/iliyamo/airline-seat-reservation/internal/model"

// DefaultMultiplierBps is the neutral flight fare multiplier (1.0x).
// Flights created without an explicit multiplier use this value.
const DefaultMultiplierBps = 10000

// Seat surcharges applied when seats are seeded for a new flight.
const (
    WindowSurchargeCents = 1000
    AisleSurchargeCents  = 500
)

// Quote computes the final price in cents for a seat: the route base
// fare for the seat's class, scaled by the flight's multiplier in
// basis points, plus the seat surcharge.  It is pure and
// deterministic; the coordinator re-evaluates it at confirm time so
// a stale client-side price is never trusted.
func Quote(route model.Route, flight model.Flight, seat model.Seat) uint32 {
    mult := flight.PriceMultiplierBps
    if mult == 0 {
        mult = DefaultMultiplierBps
    }
    base := uint64(route.BasePriceCents(seat.Class))
    fare := base * uint64(mult) / DefaultMultiplierBps
    return uint32(fare) + seat.SurchargeCents
}

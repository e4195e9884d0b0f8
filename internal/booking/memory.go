package booking

import (
    "context"
    "sort"
    "sync"
    "time"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// MemoryStore is an in-memory Store used by tests and by dev mode
// when no database is configured.  All methods take the same
// conditional-update view as SQLStore: state transitions apply only
// when the current state matches the expectation.
type MemoryStore struct {
    mu           sync.RWMutex
    routes       map[uint64]model.Route
    flights      map[uint64]model.Flight
    seats        map[uint64]map[string]model.Seat // flight id -> seat number -> seat
    reservations map[string]model.Reservation
    nextSeatID   uint64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
    return &MemoryStore{
        routes:       make(map[uint64]model.Route),
        flights:      make(map[uint64]model.Flight),
        seats:        make(map[uint64]map[string]model.Seat),
        reservations: make(map[string]model.Reservation),
    }
}

// AddRoute seeds a route.
func (s *MemoryStore) AddRoute(r model.Route) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.routes[r.ID] = r
}

// AddFlight seeds a flight.
func (s *MemoryStore) AddFlight(f model.Flight) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.flights[f.ID] = f
    if _, ok := s.seats[f.ID]; !ok {
        s.seats[f.ID] = make(map[string]model.Seat)
    }
}

// AddSeat seeds a seat on a previously added flight and assigns its id.
func (s *MemoryStore) AddSeat(seat model.Seat) model.Seat {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.nextSeatID++
    seat.ID = s.nextSeatID
    if seat.Status == "" {
        seat.Status = model.SeatAvailable
    }
    if _, ok := s.seats[seat.FlightID]; !ok {
        s.seats[seat.FlightID] = make(map[string]model.Seat)
    }
    s.seats[seat.FlightID][seat.SeatNumber] = seat
    return seat
}

func (s *MemoryStore) GetFlight(ctx context.Context, flightID uint64) (model.Flight, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    f, ok := s.flights[flightID]
    if !ok {
        return model.Flight{}, ErrFlightNotFound
    }
    return f, nil
}

func (s *MemoryStore) GetRoute(ctx context.Context, routeID uint64) (model.Route, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    r, ok := s.routes[routeID]
    if !ok {
        return model.Route{}, ErrRouteNotFound
    }
    return r, nil
}

func (s *MemoryStore) GetSeat(ctx context.Context, flightID uint64, seatNumber string) (model.Seat, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    seat, ok := s.seats[flightID][seatNumber]
    if !ok {
        return model.Seat{}, ErrSeatNotFound
    }
    return seat, nil
}

func (s *MemoryStore) ListSeats(ctx context.Context, flightID uint64, class *model.SeatClass) ([]model.Seat, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    if _, ok := s.flights[flightID]; !ok {
        return nil, ErrFlightNotFound
    }
    out := make([]model.Seat, 0, len(s.seats[flightID]))
    for _, seat := range s.seats[flightID] {
        if class != nil && seat.Class != *class {
            continue
        }
        out = append(out, seat)
    }
    sort.Slice(out, func(i, j int) bool {
        if len(out[i].SeatNumber) != len(out[j].SeatNumber) {
            return len(out[i].SeatNumber) < len(out[j].SeatNumber)
        }
        return out[i].SeatNumber < out[j].SeatNumber
    })
    return out, nil
}

func (s *MemoryStore) CreateHold(ctx context.Context, res *model.Reservation) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    flight, ok := s.flights[res.FlightID]
    if !ok {
        return ErrFlightNotFound
    }
    seat, ok := s.seats[res.FlightID][res.SeatNumber]
    if !ok {
        return ErrSeatNotFound
    }
    if seat.Status != model.SeatAvailable {
        return ErrSeatUnavailable
    }
    if flight.AvailableFor(seat.Class) == 0 {
        return ErrCapacityExceeded
    }
    seat.Status = model.SeatHeld
    s.seats[res.FlightID][res.SeatNumber] = seat
    s.adjustCounterLocked(&flight, seat.Class, -1)
    s.flights[res.FlightID] = flight
    s.reservations[res.ID] = *res
    return nil
}

func (s *MemoryStore) GetReservation(ctx context.Context, id string) (model.Reservation, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    res, ok := s.reservations[id]
    if !ok {
        return model.Reservation{}, ErrReservationNotFound
    }
    return res, nil
}

func (s *MemoryStore) ConfirmReservation(ctx context.Context, id string, priceCents uint32) (bool, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    res, ok := s.reservations[id]
    if !ok {
        return false, ErrReservationNotFound
    }
    if res.Status != model.ReservationHeld {
        return false, nil
    }
    res.Status = model.ReservationConfirmed
    res.PriceCents = priceCents
    s.reservations[id] = res
    if seat, ok := s.seats[res.FlightID][res.SeatNumber]; ok && seat.Status == model.SeatHeld {
        seat.Status = model.SeatConfirmed
        s.seats[res.FlightID][res.SeatNumber] = seat
    }
    return true, nil
}

func (s *MemoryStore) ReleaseReservation(ctx context.Context, id string, from model.ReservationStatus) (bool, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    res, ok := s.reservations[id]
    if !ok {
        return false, ErrReservationNotFound
    }
    if res.Status != from {
        return false, nil
    }
    res.Status = model.ReservationCancelled
    s.reservations[id] = res
    seat, ok := s.seats[res.FlightID][res.SeatNumber]
    if ok && seat.Status != model.SeatAvailable {
        seat.Status = model.SeatAvailable
        s.seats[res.FlightID][res.SeatNumber] = seat
        if flight, ok := s.flights[res.FlightID]; ok {
            s.adjustCounterLocked(&flight, seat.Class, +1)
            s.flights[res.FlightID] = flight
        }
    }
    return true, nil
}

func (s *MemoryStore) ListExpiredHolds(ctx context.Context, now time.Time, limit int) ([]model.Reservation, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    var out []model.Reservation
    for _, res := range s.reservations {
        if res.Expired(now) {
            out = append(out, res)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
    if limit > 0 && len(out) > limit {
        out = out[:limit]
    }
    return out, nil
}

// adjustCounterLocked shifts a per-class availability counter by
// delta.  Callers hold s.mu.
func (s *MemoryStore) adjustCounterLocked(f *model.Flight, class model.SeatClass, delta int32) {
    apply := func(v uint32) uint32 {
        if delta < 0 && v == 0 {
            return 0
        }
        return uint32(int64(v) + int64(delta))
    }
    switch class {
    case model.SeatClassBusiness:
        f.AvailableBusiness = apply(f.AvailableBusiness)
    case model.SeatClassFirst:
        f.AvailableFirst = apply(f.AvailableFirst)
    default:
        f.AvailableEconomy = apply(f.AvailableEconomy)
    }
}

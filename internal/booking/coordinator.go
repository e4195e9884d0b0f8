package booking

import (
    "context"
    "fmt"
    "log"
    "sync"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// Auditor receives audit entries for every state-changing booking
// operation.  Recording is fire-and-forget: the coordinator never
// fails an operation because of the audit trail.
type Auditor interface {
    Record(e model.ActivityLogEntry)
}

// Coordinator serializes conflicting booking attempts.  Every
// hold/confirm/cancel/expire transition for a given seat runs under a
// key-scoped exclusive lock, so the observed state sequence for one
// seat is a strict chain AVAILABLE → HELD → (CONFIRMED | AVAILABLE).
// Operations on different seats proceed independently; there is no
// flight-wide lock.
//
// The store's conditional updates are the second line of defense:
// they keep the data safe even if another process mutates the same
// rows.
type Coordinator struct {
    store Store
    audit Auditor
    now   func() time.Time

    mu    sync.Mutex
    locks map[string]*sync.Mutex // per (flight, seat) key, never shrinks
}

// NewCoordinator builds a Coordinator.  audit may be nil when no
// trail is wanted (tests).  now may be nil, in which case UTC wall
// time is used; injecting it makes TTL behavior deterministic in
// tests.
func NewCoordinator(store Store, audit Auditor, now func() time.Time) *Coordinator {
    if store == nil {
        panic("nil store passed to NewCoordinator")
    }
    if now == nil {
        now = func() time.Time { return time.Now().UTC() }
    }
    return &Coordinator{
        store: store,
        audit: audit,
        now:   now,
        locks: make(map[string]*sync.Mutex),
    }
}

// lockSeat acquires the exclusive lock for one seat key and returns
// the unlock function.  Lock entries are retained for the process
// lifetime; the map is bounded by the number of distinct seats seen.
func (c *Coordinator) lockSeat(flightID uint64, seatNumber string) func() {
    key := fmt.Sprintf("%d/%s", flightID, seatNumber)
    c.mu.Lock()
    l, ok := c.locks[key]
    if !ok {
        l = &sync.Mutex{}
        c.locks[key] = l
    }
    c.mu.Unlock()
    l.Lock()
    return l.Unlock
}

func (c *Coordinator) record(e model.ActivityLogEntry) {
    if c.audit == nil {
        return
    }
    if e.CreatedAt.IsZero() {
        e.CreatedAt = c.now()
    }
    c.audit.Record(e)
}

// Hold atomically claims a seat for a user.  It checks that the
// flight is bookable (scheduled or boarding, departure in the
// future) and the seat available, flips the seat to HELD, decrements
// the class counter and creates a reservation with the given TTL.
// It fails fast with ErrSeatUnavailable instead of queuing.
func (c *Coordinator) Hold(ctx context.Context, flightID uint64, seatNumber string, userID uint64, ttl time.Duration) (model.Reservation, error) {
    if ttl <= 0 {
        return model.Reservation{}, fmt.Errorf("hold: non-positive ttl %v", ttl)
    }
    unlock := c.lockSeat(flightID, seatNumber)
    defer unlock()

    flight, err := c.store.GetFlight(ctx, flightID)
    if err != nil {
        return model.Reservation{}, err
    }
    now := c.now()
    if !flight.Status.Bookable() || !flight.DepartureAt.After(now) {
        return model.Reservation{}, ErrFlightNotBookable
    }
    seat, err := c.store.GetSeat(ctx, flightID, seatNumber)
    if err != nil {
        return model.Reservation{}, err
    }
    if seat.Status != model.SeatAvailable {
        return model.Reservation{}, ErrSeatUnavailable
    }
    if flight.AvailableFor(seat.Class) == 0 {
        // An available seat with a zero counter means the counter and
        // the seat flags disagree; surface it, do not repair.
        log.Printf("booking: counter/seat mismatch on flight %d class %s", flightID, seat.Class)
        return model.Reservation{}, ErrCapacityExceeded
    }

    res := model.Reservation{
        ID:         uuid.NewString(),
        UserID:     userID,
        FlightID:   flightID,
        SeatID:     seat.ID,
        SeatNumber: seat.SeatNumber,
        Class:      seat.Class,
        Status:     model.ReservationHeld,
        ExpiresAt:  now.Add(ttl),
        CreatedAt:  now,
        UpdatedAt:  now,
    }
    if err := c.store.CreateHold(ctx, &res); err != nil {
        return model.Reservation{}, err
    }
    c.record(model.ActivityLogEntry{
        UserID:     userID,
        Action:     model.ActionHoldSeat,
        EntityType: "reservation",
        EntityRef:  res.ID,
        Detail:     fmt.Sprintf("flight=%d seat=%s ttl=%s", flightID, seatNumber, ttl),
    })
    return res, nil
}

// Confirm finalizes a held reservation.  The price is recomputed
// server-side from the route, flight and seat.  Confirm is
// idempotent while the reservation stays confirmed: repeated calls
// return the stored result without further side effects.  A hold
// past its TTL is lazily cancelled here and reported as ErrExpired
// even if no sweep has run yet.
func (c *Coordinator) Confirm(ctx context.Context, reservationID string) (model.Reservation, error) {
    res, err := c.store.GetReservation(ctx, reservationID)
    if err != nil {
        return model.Reservation{}, err
    }
    unlock := c.lockSeat(res.FlightID, res.SeatNumber)
    defer unlock()

    // Re-read under the lock; the state may have moved.
    res, err = c.store.GetReservation(ctx, reservationID)
    if err != nil {
        return model.Reservation{}, err
    }
    switch res.Status {
    case model.ReservationCancelled:
        return model.Reservation{}, ErrInvalidState
    case model.ReservationConfirmed:
        return res, nil
    }

    now := c.now()
    if res.Expired(now) {
        if swapped, err := c.store.ReleaseReservation(ctx, res.ID, model.ReservationHeld); err != nil {
            return model.Reservation{}, err
        } else if swapped {
            c.record(model.ActivityLogEntry{
                UserID:     res.UserID,
                Action:     model.ActionExpireHold,
                EntityType: "reservation",
                EntityRef:  res.ID,
                Detail:     "expired at confirm",
            })
        }
        return model.Reservation{}, ErrExpired
    }

    flight, err := c.store.GetFlight(ctx, res.FlightID)
    if err != nil {
        return model.Reservation{}, err
    }
    route, err := c.store.GetRoute(ctx, flight.RouteID)
    if err != nil {
        return model.Reservation{}, err
    }
    seat, err := c.store.GetSeat(ctx, res.FlightID, res.SeatNumber)
    if err != nil {
        return model.Reservation{}, err
    }
    price := Quote(route, flight, seat)

    swapped, err := c.store.ConfirmReservation(ctx, res.ID, price)
    if err != nil {
        return model.Reservation{}, err
    }
    if !swapped {
        // Lost a race despite the lock (external mutation); report
        // the current state instead of guessing.
        cur, err := c.store.GetReservation(ctx, res.ID)
        if err != nil {
            return model.Reservation{}, err
        }
        if cur.Status == model.ReservationConfirmed {
            return cur, nil
        }
        return model.Reservation{}, ErrInvalidState
    }
    res.Status = model.ReservationConfirmed
    res.PriceCents = price
    res.UpdatedAt = now
    c.record(model.ActivityLogEntry{
        UserID:     res.UserID,
        Action:     model.ActionConfirmSeat,
        EntityType: "reservation",
        EntityRef:  res.ID,
        Detail:     fmt.Sprintf("flight=%d seat=%s price_cents=%d", res.FlightID, res.SeatNumber, price),
    })
    return res, nil
}

// Cancel transitions a reservation to CANCELLED and returns its seat
// to the pool.  Cancelling an already-cancelled reservation is a
// success with no side effect, so a user cancel racing the expiry
// sweep commutes: whichever wins the compare-and-swap restores the
// seat exactly once.
func (c *Coordinator) Cancel(ctx context.Context, reservationID string, actorID uint64) error {
    res, err := c.store.GetReservation(ctx, reservationID)
    if err != nil {
        return err
    }
    unlock := c.lockSeat(res.FlightID, res.SeatNumber)
    defer unlock()

    res, err = c.store.GetReservation(ctx, reservationID)
    if err != nil {
        return err
    }
    if res.Status == model.ReservationCancelled {
        return nil
    }
    swapped, err := c.store.ReleaseReservation(ctx, res.ID, res.Status)
    if err != nil {
        return err
    }
    if swapped {
        c.record(model.ActivityLogEntry{
            UserID:     actorID,
            Action:     model.ActionCancelSeat,
            EntityType: "reservation",
            EntityRef:  res.ID,
            Detail:     fmt.Sprintf("flight=%d seat=%s was=%s", res.FlightID, res.SeatNumber, res.Status),
        })
    }
    // Not swapped means another actor cancelled first; that is still
    // success from the caller's perspective.
    return nil
}

// ExpireStaleHolds sweeps HELD reservations past their TTL and
// cancels them with the same restore side effect as Cancel.  It is
// idempotent and safe to run concurrently with user-initiated
// cancels; the compare-and-swap on reservation status resolves the
// race.  Returns the number of holds released.
func (c *Coordinator) ExpireStaleHolds(ctx context.Context, now time.Time) (int, error) {
    const sweepLimit = 256
    stale, err := c.store.ListExpiredHolds(ctx, now, sweepLimit)
    if err != nil {
        return 0, err
    }
    released := 0
    for _, res := range stale {
        unlock := c.lockSeat(res.FlightID, res.SeatNumber)
        swapped, err := c.store.ReleaseReservation(ctx, res.ID, model.ReservationHeld)
        unlock()
        if err != nil {
            return released, err
        }
        if !swapped {
            continue // confirmed or cancelled in the meantime
        }
        released++
        c.record(model.ActivityLogEntry{
            UserID:     res.UserID,
            Action:     model.ActionExpireHold,
            EntityType: "reservation",
            EntityRef:  res.ID,
            Detail:     fmt.Sprintf("flight=%d seat=%s expired_at=%s", res.FlightID, res.SeatNumber, res.ExpiresAt.Format(time.RFC3339)),
        })
    }
    return released, nil
}

// Reservation returns a reservation by id for ownership checks and
// detail responses.
func (c *Coordinator) Reservation(ctx context.Context, reservationID string) (model.Reservation, error) {
    return c.store.GetReservation(ctx, reservationID)
}

// ClassAvailability summarizes one cabin class of a flight.
type ClassAvailability struct {
    Class     model.SeatClass `json:"class"`
    Available uint32          `json:"available"`
    Held      uint32          `json:"held"`
    Confirmed uint32          `json:"confirmed"`
}

// Availability is the per-class counter view plus the seat map of a
// flight.
type Availability struct {
    FlightID uint64              `json:"flight_id"`
    Status   model.FlightStatus  `json:"status"`
    Classes  []ClassAvailability `json:"classes"`
    Seats    []model.Seat        `json:"-"`
}

// Availability reports per-class available counts and the seat map.
// It cross-checks the flight counters against the seat flags; a
// mismatch indicates a bug and is logged as an alert, never silently
// repaired.
func (c *Coordinator) Availability(ctx context.Context, flightID uint64) (Availability, error) {
    flight, err := c.store.GetFlight(ctx, flightID)
    if err != nil {
        return Availability{}, err
    }
    seats, err := c.store.ListSeats(ctx, flightID, nil)
    if err != nil {
        return Availability{}, err
    }

    byClass := map[model.SeatClass]*ClassAvailability{}
    order := []model.SeatClass{model.SeatClassEconomy, model.SeatClassBusiness, model.SeatClassFirst}
    for _, cl := range order {
        byClass[cl] = &ClassAvailability{Class: cl, Available: flight.AvailableFor(cl)}
    }
    counted := map[model.SeatClass]uint32{}
    for _, s := range seats {
        ca, ok := byClass[s.Class]
        if !ok {
            continue
        }
        switch s.Status {
        case model.SeatHeld:
            ca.Held++
        case model.SeatConfirmed:
            ca.Confirmed++
        case model.SeatAvailable:
            counted[s.Class]++
        }
    }
    for cl, n := range counted {
        if byClass[cl].Available != n {
            log.Printf("booking: ALERT availability counter mismatch flight=%d class=%s counter=%d seats=%d",
                flightID, cl, byClass[cl].Available, n)
        }
    }

    out := Availability{FlightID: flightID, Status: flight.Status, Seats: seats}
    for _, cl := range order {
        out.Classes = append(out.Classes, *byClass[cl])
    }
    return out, nil
}

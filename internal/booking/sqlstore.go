package booking

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// SQLStore implements Store on top of MySQL through database/sql.
// State transitions use conditional UPDATEs (WHERE status = expected)
// inside transactions, so the affected-row count is the
// compare-and-swap result.  Availability counters are guarded in the
// same statements: decrements require the counter to be positive and
// increments are capped at the aircraft capacity.
type SQLStore struct {
    db *sql.DB
}

// NewSQLStore binds a SQLStore to an open database handle.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// availColumn maps a cabin class to its counter column on flights.
// The class enum is closed, so this never interpolates user input.
func availColumn(class model.SeatClass) string {
    switch class {
    case model.SeatClassBusiness:
        return "available_business"
    case model.SeatClassFirst:
        return "available_first"
    default:
        return "available_economy"
    }
}

// capacityColumn maps a cabin class to its capacity column on aircraft.
func capacityColumn(class model.SeatClass) string {
    switch class {
    case model.SeatClassBusiness:
        return "business_seats"
    case model.SeatClassFirst:
        return "first_seats"
    default:
        return "economy_seats"
    }
}

const flightColumns = `id, flight_number, route_id, aircraft_id, departure_at, arrival_at,
        status, available_economy, available_business, available_first, price_multiplier_bps,
        gate, created_at, updated_at`

func scanFlight(row *sql.Row) (model.Flight, error) {
    var f model.Flight
    var status string
    err := row.Scan(&f.ID, &f.FlightNumber, &f.RouteID, &f.AircraftID, &f.DepartureAt, &f.ArrivalAt,
        &status, &f.AvailableEconomy, &f.AvailableBusiness, &f.AvailableFirst, &f.PriceMultiplierBps,
        &f.Gate, &f.CreatedAt, &f.UpdatedAt)
    if err != nil {
        return model.Flight{}, err
    }
    st, ok := model.ParseFlightStatus(status)
    if !ok {
        return model.Flight{}, fmt.Errorf("flight %d: unknown status %q", f.ID, status)
    }
    f.Status = st
    return f, nil
}

func (s *SQLStore) GetFlight(ctx context.Context, flightID uint64) (model.Flight, error) {
    row := s.db.QueryRowContext(ctx,
        `SELECT `+flightColumns+` FROM flights WHERE id = ? LIMIT 1`, flightID)
    f, err := scanFlight(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Flight{}, ErrFlightNotFound
    }
    return f, err
}

func (s *SQLStore) GetRoute(ctx context.Context, routeID uint64) (model.Route, error) {
    var r model.Route
    err := s.db.QueryRowContext(ctx,
        `SELECT id, origin_airport_id, destination_airport_id, distance_km, duration_min,
                base_economy_cents, base_business_cents, base_first_cents, is_active, created_at
         FROM routes WHERE id = ? LIMIT 1`, routeID).
        Scan(&r.ID, &r.OriginAirportID, &r.DestinationAirportID, &r.DistanceKM, &r.DurationMin,
            &r.BaseEconomyCents, &r.BaseBusinessCents, &r.BaseFirstCents, &r.IsActive, &r.CreatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Route{}, ErrRouteNotFound
    }
    return r, err
}

const seatColumns = `id, flight_id, seat_number, class, status, is_window, is_aisle,
        surcharge_cents, created_at, updated_at`

func scanSeat(scan func(dest ...any) error) (model.Seat, error) {
    var seat model.Seat
    var class, status string
    err := scan(&seat.ID, &seat.FlightID, &seat.SeatNumber, &class, &status,
        &seat.IsWindow, &seat.IsAisle, &seat.SurchargeCents, &seat.CreatedAt, &seat.UpdatedAt)
    if err != nil {
        return model.Seat{}, err
    }
    cl, ok := model.ParseSeatClass(class)
    if !ok {
        return model.Seat{}, fmt.Errorf("seat %d: unknown class %q", seat.ID, class)
    }
    seat.Class = cl
    switch model.SeatStatus(status) {
    case model.SeatAvailable, model.SeatHeld, model.SeatConfirmed:
        seat.Status = model.SeatStatus(status)
    default:
        return model.Seat{}, fmt.Errorf("seat %d: unknown status %q", seat.ID, status)
    }
    return seat, nil
}

func (s *SQLStore) GetSeat(ctx context.Context, flightID uint64, seatNumber string) (model.Seat, error) {
    row := s.db.QueryRowContext(ctx,
        `SELECT `+seatColumns+` FROM seats WHERE flight_id = ? AND seat_number = ? LIMIT 1`,
        flightID, seatNumber)
    seat, err := scanSeat(row.Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Seat{}, ErrSeatNotFound
    }
    return seat, err
}

func (s *SQLStore) ListSeats(ctx context.Context, flightID uint64, class *model.SeatClass) ([]model.Seat, error) {
    query := `SELECT ` + seatColumns + ` FROM seats WHERE flight_id = ?`
    args := []any{flightID}
    if class != nil {
        query += ` AND class = ?`
        args = append(args, string(*class))
    }
    // Length-first ordering sorts "2A" before "12A".
    query += ` ORDER BY CHAR_LENGTH(seat_number), seat_number`
    rows, err := s.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var seats []model.Seat
    for rows.Next() {
        seat, err := scanSeat(rows.Scan)
        if err != nil {
            return nil, err
        }
        seats = append(seats, seat)
    }
    return seats, rows.Err()
}

func (s *SQLStore) CreateHold(ctx context.Context, res *model.Reservation) error {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Flip the seat only if it is still available.  Zero affected
    // rows means another hold won the race.
    r, err := tx.ExecContext(ctx,
        `UPDATE seats SET status = ?, updated_at = UTC_TIMESTAMP()
         WHERE flight_id = ? AND seat_number = ? AND status = ?`,
        string(model.SeatHeld), res.FlightID, res.SeatNumber, string(model.SeatAvailable))
    if err != nil {
        return err
    }
    if n, _ := r.RowsAffected(); n == 0 {
        return ErrSeatUnavailable
    }

    col := availColumn(res.Class)
    r, err = tx.ExecContext(ctx,
        `UPDATE flights SET `+col+` = `+col+` - 1, updated_at = UTC_TIMESTAMP()
         WHERE id = ? AND `+col+` > 0`, res.FlightID)
    if err != nil {
        return err
    }
    if n, _ := r.RowsAffected(); n == 0 {
        return ErrCapacityExceeded
    }

    _, err = tx.ExecContext(ctx,
        `INSERT INTO reservations (id, user_id, flight_id, seat_id, seat_number, class, status, price_cents, expires_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
        res.ID, res.UserID, res.FlightID, res.SeatID, res.SeatNumber, string(res.Class),
        string(res.Status), res.PriceCents, res.ExpiresAt.UTC().Format("2006-01-02 15:04:05"))
    if err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

const reservationColumns = `id, user_id, flight_id, seat_id, seat_number, class, status,
        price_cents, expires_at, created_at, updated_at`

func scanReservation(scan func(dest ...any) error) (model.Reservation, error) {
    var res model.Reservation
    var class, status string
    err := scan(&res.ID, &res.UserID, &res.FlightID, &res.SeatID, &res.SeatNumber, &class, &status,
        &res.PriceCents, &res.ExpiresAt, &res.CreatedAt, &res.UpdatedAt)
    if err != nil {
        return model.Reservation{}, err
    }
    cl, ok := model.ParseSeatClass(class)
    if !ok {
        return model.Reservation{}, fmt.Errorf("reservation %s: unknown class %q", res.ID, class)
    }
    st, ok := model.ParseReservationStatus(status)
    if !ok {
        return model.Reservation{}, fmt.Errorf("reservation %s: unknown status %q", res.ID, status)
    }
    res.Class = cl
    res.Status = st
    return res, nil
}

func (s *SQLStore) GetReservation(ctx context.Context, id string) (model.Reservation, error) {
    row := s.db.QueryRowContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations WHERE id = ? LIMIT 1`, id)
    res, err := scanReservation(row.Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Reservation{}, ErrReservationNotFound
    }
    return res, err
}

func (s *SQLStore) ConfirmReservation(ctx context.Context, id string, priceCents uint32) (bool, error) {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return false, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    r, err := tx.ExecContext(ctx,
        `UPDATE reservations SET status = ?, price_cents = ?, updated_at = UTC_TIMESTAMP()
         WHERE id = ? AND status = ?`,
        string(model.ReservationConfirmed), priceCents, id, string(model.ReservationHeld))
    if err != nil {
        return false, err
    }
    if n, _ := r.RowsAffected(); n == 0 {
        return false, nil
    }
    // Held and confirmed seats are equally unavailable, so counters
    // stay put; only the seat status advances.
    _, err = tx.ExecContext(ctx,
        `UPDATE seats SET status = ?, updated_at = UTC_TIMESTAMP()
         WHERE id = (SELECT seat_id FROM reservations WHERE id = ?) AND status = ?`,
        string(model.SeatConfirmed), id, string(model.SeatHeld))
    if err != nil {
        return false, err
    }
    if err := tx.Commit(); err != nil {
        return false, err
    }
    committed = true
    return true, nil
}

func (s *SQLStore) ReleaseReservation(ctx context.Context, id string, from model.ReservationStatus) (bool, error) {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return false, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    row := tx.QueryRowContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations WHERE id = ? LIMIT 1 FOR UPDATE`, id)
    res, err := scanReservation(row.Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return false, ErrReservationNotFound
    }
    if err != nil {
        return false, err
    }

    r, err := tx.ExecContext(ctx,
        `UPDATE reservations SET status = ?, updated_at = UTC_TIMESTAMP()
         WHERE id = ? AND status = ?`,
        string(model.ReservationCancelled), id, string(from))
    if err != nil {
        return false, err
    }
    if n, _ := r.RowsAffected(); n == 0 {
        return false, nil
    }

    _, err = tx.ExecContext(ctx,
        `UPDATE seats SET status = ?, updated_at = UTC_TIMESTAMP()
         WHERE id = ? AND status IN (?, ?)`,
        string(model.SeatAvailable), res.SeatID, string(model.SeatHeld), string(model.SeatConfirmed))
    if err != nil {
        return false, err
    }

    // Increment is capped at the aircraft capacity for the class so a
    // double release can never inflate the counter past the cabin.
    col := availColumn(res.Class)
    capCol := capacityColumn(res.Class)
    _, err = tx.ExecContext(ctx,
        `UPDATE flights f
         JOIN aircraft a ON a.id = f.aircraft_id
         SET f.`+col+` = f.`+col+` + 1, f.updated_at = UTC_TIMESTAMP()
         WHERE f.id = ? AND f.`+col+` < a.`+capCol, res.FlightID)
    if err != nil {
        return false, err
    }
    if err := tx.Commit(); err != nil {
        return false, err
    }
    committed = true
    return true, nil
}

func (s *SQLStore) ListExpiredHolds(ctx context.Context, now time.Time, limit int) ([]model.Reservation, error) {
    rows, err := s.db.QueryContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations
         WHERE status = ? AND expires_at <= ?
         ORDER BY expires_at LIMIT ?`,
        string(model.ReservationHeld), now.UTC().Format("2006-01-02 15:04:05"), limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Reservation
    for rows.Next() {
        res, err := scanReservation(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    return out, rows.Err()
}

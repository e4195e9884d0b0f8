package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// FlightRepo provides access to the flights table for scheduling and
// browse queries.  Availability counters and seat flips are never
// touched here; those mutations belong to the booking store.
type FlightRepo struct{ DB *sql.DB }

func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{DB: db} }

// execer is the ExecContext subset shared by *sql.DB and *sql.Tx.
type execer interface {
    ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateWithSeats inserts a scheduled flight and seeds its full seat
// map inside one transaction, populating f.ID.  If the seat insert
// fails the flight row rolls back with it, so no flight can exist
// whose counters claim availability with no seat rows behind it.
// seatsFor receives the flight ID assigned by the insert.  A
// duplicate flight number maps to ErrFlightNumberExists.
func (r *FlightRepo) CreateWithSeats(ctx context.Context, f *model.Flight, seatsFor func(flightID uint64) []model.Seat) error {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    res, err := tx.ExecContext(ctx,
        `INSERT INTO flights (flight_number, route_id, aircraft_id, departure_at, arrival_at,
                 status, available_economy, available_business, available_first, price_multiplier_bps, gate)
         VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
        f.FlightNumber, f.RouteID, f.AircraftID,
        f.DepartureAt.UTC().Format("2006-01-02 15:04:05"),
        f.ArrivalAt.UTC().Format("2006-01-02 15:04:05"),
        string(f.Status), f.AvailableEconomy, f.AvailableBusiness, f.AvailableFirst,
        f.PriceMultiplierBps, f.Gate)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrFlightNumberExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    f.ID = uint64(id)

    if err := insertSeats(ctx, tx, seatsFor(f.ID)); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// insertSeats bulk-inserts seat rows in one statement.  Timestamps
// default in the database; IDs of the passed structs are not
// populated.  An empty slice is a no-op.
func insertSeats(ctx context.Context, ex execer, seats []model.Seat) error {
    if len(seats) == 0 {
        return nil
    }
    query := `INSERT INTO seats (flight_id, seat_number, class, status, is_window, is_aisle, surcharge_cents) VALUES `
    args := make([]any, 0, len(seats)*7)
    for i, s := range seats {
        if i > 0 {
            query += ","
        }
        query += "(?,?,?,?,?,?,?)"
        args = append(args, s.FlightID, s.SeatNumber, string(s.Class), string(s.Status),
            s.IsWindow, s.IsAisle, s.SurchargeCents)
    }
    _, err := ex.ExecContext(ctx, query, args...)
    return err
}

const flightCols = `id, flight_number, route_id, aircraft_id, departure_at, arrival_at,
        status, available_economy, available_business, available_first, price_multiplier_bps,
        gate, created_at, updated_at`

func scanFlightRow(scan func(dest ...any) error) (model.Flight, error) {
    var f model.Flight
    var status string
    err := scan(&f.ID, &f.FlightNumber, &f.RouteID, &f.AircraftID, &f.DepartureAt, &f.ArrivalAt,
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

// GetByID fetches a flight by primary key.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (model.Flight, error) {
    row := r.DB.QueryRowContext(ctx,
        `SELECT `+flightCols+` FROM flights WHERE id = ? LIMIT 1`, id)
    f, err := scanFlightRow(row.Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Flight{}, ErrFlightNotFound
    }
    return f, err
}

// Search returns flights matching the optional filters: route origin
// and destination airport IDs and a UTC departure day.  Results are
// ordered by departure time.
func (r *FlightRepo) Search(ctx context.Context, originID, destinationID uint64, day *time.Time) ([]model.Flight, error) {
    query := `SELECT f.id, f.flight_number, f.route_id, f.aircraft_id, f.departure_at, f.arrival_at,
                f.status, f.available_economy, f.available_business, f.available_first,
                f.price_multiplier_bps, f.gate, f.created_at, f.updated_at
         FROM flights f JOIN routes rt ON rt.id = f.route_id WHERE 1=1`
    var args []any
    if originID != 0 {
        query += ` AND rt.origin_airport_id = ?`
        args = append(args, originID)
    }
    if destinationID != 0 {
        query += ` AND rt.destination_airport_id = ?`
        args = append(args, destinationID)
    }
    if day != nil {
        start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
        query += ` AND f.departure_at >= ? AND f.departure_at < ?`
        args = append(args,
            start.Format("2006-01-02 15:04:05"),
            start.Add(24*time.Hour).Format("2006-01-02 15:04:05"))
    }
    query += ` ORDER BY f.departure_at`
    rows, err := r.DB.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Flight
    for rows.Next() {
        f, err := scanFlightRow(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, f)
    }
    return out, rows.Err()
}

// UpdateStatus moves a flight between statuses with a
// compare-and-swap on the current value.  Returns false when the
// flight was no longer in the expected status; the caller decides
// whether that is a conflict.
func (r *FlightRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.FlightStatus) (bool, error) {
    res, err := r.DB.ExecContext(ctx,
        `UPDATE flights SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ? AND status = ?`,
        string(to), id, string(from))
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

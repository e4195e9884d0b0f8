package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// AircraftRepo provides access to the aircraft table.
type AircraftRepo struct{ DB *sql.DB }

func NewAircraftRepo(db *sql.DB) *AircraftRepo { return &AircraftRepo{DB: db} }

// Create inserts an aircraft after validating the cabin arithmetic
// and populates its ID.  A duplicate tail number maps to
// ErrTailNumberExists.
func (r *AircraftRepo) Create(ctx context.Context, a *model.Aircraft) error {
    if err := a.Validate(); err != nil {
        return err
    }
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO aircraft (tail_number, model, manufacturer, total_seats,
                 economy_seats, business_seats, first_seats, is_active)
         VALUES (?,?,?,?,?,?,?,?)`,
        a.TailNumber, a.Model, a.Manufacturer, a.TotalSeats,
        a.EconomySeats, a.BusinessSeats, a.FirstSeats, a.IsActive)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrTailNumberExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = uint64(id)
    return nil
}

const aircraftColumns = `id, tail_number, model, manufacturer, total_seats,
        economy_seats, business_seats, first_seats, is_active, created_at, updated_at`

func scanAircraft(scan func(dest ...any) error) (model.Aircraft, error) {
    var a model.Aircraft
    err := scan(&a.ID, &a.TailNumber, &a.Model, &a.Manufacturer, &a.TotalSeats,
        &a.EconomySeats, &a.BusinessSeats, &a.FirstSeats, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
    return a, err
}

// GetByID fetches an aircraft by primary key.
func (r *AircraftRepo) GetByID(ctx context.Context, id uint64) (model.Aircraft, error) {
    row := r.DB.QueryRowContext(ctx,
        `SELECT `+aircraftColumns+` FROM aircraft WHERE id = ? LIMIT 1`, id)
    a, err := scanAircraft(row.Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Aircraft{}, ErrAircraftNotFound
    }
    return a, err
}

// List returns all aircraft ordered by tail number.
func (r *AircraftRepo) List(ctx context.Context) ([]model.Aircraft, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT `+aircraftColumns+` FROM aircraft ORDER BY tail_number`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Aircraft
    for rows.Next() {
        a, err := scanAircraft(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

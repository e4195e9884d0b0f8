package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// AirportRepo provides access to the airports table.  Airports are
// immutable once created; only inserts and lookups are offered.
type AirportRepo struct{ DB *sql.DB }

func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{DB: db} }

// Create inserts an airport and returns its ID.  The code must be
// normalized (upper-case) by the caller; a duplicate code maps to
// ErrAirportCodeExists.
func (r *AirportRepo) Create(ctx context.Context, a *model.Airport) error {
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO airports (code, name, city, country, timezone) VALUES (?,?,?,?,?)`,
        a.Code, a.Name, a.City, a.Country, a.Timezone)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrAirportCodeExists
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

const airportColumns = `id, code, name, city, country, timezone, created_at`

func scanAirport(scan func(dest ...any) error) (model.Airport, error) {
    var a model.Airport
    err := scan(&a.ID, &a.Code, &a.Name, &a.City, &a.Country, &a.Timezone, &a.CreatedAt)
    return a, err
}

// GetByID fetches an airport by primary key.
func (r *AirportRepo) GetByID(ctx context.Context, id uint64) (model.Airport, error) {
    row := r.DB.QueryRowContext(ctx,
        `SELECT `+airportColumns+` FROM airports WHERE id = ? LIMIT 1`, id)
    a, err := scanAirport(row.Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Airport{}, ErrAirportNotFound
    }
    return a, err
}

// GetByCode fetches an airport by its normalized code.
func (r *AirportRepo) GetByCode(ctx context.Context, code string) (model.Airport, error) {
    row := r.DB.QueryRowContext(ctx,
        `SELECT `+airportColumns+` FROM airports WHERE code = ? LIMIT 1`,
        strings.ToUpper(strings.TrimSpace(code)))
    a, err := scanAirport(row.Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Airport{}, ErrAirportNotFound
    }
    return a, err
}

// List returns all airports ordered by code.
func (r *AirportRepo) List(ctx context.Context) ([]model.Airport, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT `+airportColumns+` FROM airports ORDER BY code`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Airport
    for rows.Next() {
        a, err := scanAirport(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

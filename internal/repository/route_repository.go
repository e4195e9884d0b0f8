package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// RouteRepo provides access to the routes table.
type RouteRepo struct{ DB *sql.DB }

func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{DB: db} }

// Create inserts a route and populates its ID.  Callers validate
// that origin and destination differ and both airports exist.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO routes (origin_airport_id, destination_airport_id, distance_km, duration_min,
                 base_economy_cents, base_business_cents, base_first_cents, is_active)
         VALUES (?,?,?,?,?,?,?,?)`,
        rt.OriginAirportID, rt.DestinationAirportID, rt.DistanceKM, rt.DurationMin,
        rt.BaseEconomyCents, rt.BaseBusinessCents, rt.BaseFirstCents, rt.IsActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rt.ID = uint64(id)
    return nil
}

const routeColumns = `id, origin_airport_id, destination_airport_id, distance_km, duration_min,
        base_economy_cents, base_business_cents, base_first_cents, is_active, created_at`

func scanRoute(scan func(dest ...any) error) (model.Route, error) {
    var rt model.Route
    err := scan(&rt.ID, &rt.OriginAirportID, &rt.DestinationAirportID, &rt.DistanceKM, &rt.DurationMin,
        &rt.BaseEconomyCents, &rt.BaseBusinessCents, &rt.BaseFirstCents, &rt.IsActive, &rt.CreatedAt)
    return rt, err
}

// GetByID fetches a route by primary key.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (model.Route, error) {
    row := r.DB.QueryRowContext(ctx,
        `SELECT `+routeColumns+` FROM routes WHERE id = ? LIMIT 1`, id)
    rt, err := scanRoute(row.Scan)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Route{}, ErrRouteNotFound
    }
    return rt, err
}

// List returns all routes, optionally only active ones.
func (r *RouteRepo) List(ctx context.Context, activeOnly bool) ([]model.Route, error) {
    query := `SELECT ` + routeColumns + ` FROM routes`
    if activeOnly {
        query += ` WHERE is_active = 1`
    }
    query += ` ORDER BY id`
    rows, err := r.DB.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Route
    for rows.Next() {
        rt, err := scanRoute(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, rt)
    }
    return out, rows.Err()
}

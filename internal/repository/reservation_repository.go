package repository

import (
    "context"
    "database/sql"
    "time"
)

// ReservationDetail is the denormalized listing row returned to a
// passenger: the reservation joined with its flight and route
// endpoints.
type ReservationDetail struct {
    ID           string    `json:"id"`
    FlightNumber string    `json:"flight_number"`
    Origin       string    `json:"origin"`
    Destination  string    `json:"destination"`
    DepartureAt  time.Time `json:"departure_at"`
    SeatNumber   string    `json:"seat_number"`
    Class        string    `json:"class"`
    Status       string    `json:"status"`
    PriceCents   uint32    `json:"price_cents"`
    ExpiresAt    time.Time `json:"expires_at"`
    CreatedAt    time.Time `json:"created_at"`
}

// ReservationRepo provides read access to reservations for listing
// endpoints.  All writes go through the booking store so the
// seat/counter invariant stays in one place.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// ConfirmContext is the flight and passenger context of a single
// reservation, loaded once after a successful confirm to build the
// broker notification without further queries.
type ConfirmContext struct {
    UserEmail    string
    FlightNumber string
    Origin       string
    Destination  string
    DepartureAt  time.Time
}

// GetConfirmContext loads the ConfirmContext for a reservation.
func (r *ReservationRepo) GetConfirmContext(ctx context.Context, id string) (ConfirmContext, error) {
    const q = `SELECT u.email, f.flight_number, ao.code, ad.code, f.departure_at
         FROM reservations rs
         JOIN users u ON u.id = rs.user_id
         JOIN flights f ON f.id = rs.flight_id
         JOIN routes rt ON rt.id = f.route_id
         JOIN airports ao ON ao.id = rt.origin_airport_id
         JOIN airports ad ON ad.id = rt.destination_airport_id
         WHERE rs.id = ? LIMIT 1`
    var cc ConfirmContext
    err := r.DB.QueryRowContext(ctx, q, id).Scan(
        &cc.UserEmail, &cc.FlightNumber, &cc.Origin, &cc.Destination, &cc.DepartureAt)
    return cc, err
}

// ListByUser returns the user's reservations, newest first, with
// flight and airport context.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
    const q = `SELECT rs.id, f.flight_number, ao.code, ad.code, f.departure_at,
                rs.seat_number, rs.class, rs.status, rs.price_cents, rs.expires_at, rs.created_at
         FROM reservations rs
         JOIN flights f ON f.id = rs.flight_id
         JOIN routes rt ON rt.id = f.route_id
         JOIN airports ao ON ao.id = rt.origin_airport_id
         JOIN airports ad ON ad.id = rt.destination_airport_id
         WHERE rs.user_id = ?
         ORDER BY rs.created_at DESC`
    rows, err := r.DB.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]ReservationDetail, 0)
    for rows.Next() {
        var d ReservationDetail
        if err := rows.Scan(&d.ID, &d.FlightNumber, &d.Origin, &d.Destination, &d.DepartureAt,
            &d.SeatNumber, &d.Class, &d.Status, &d.PriceCents, &d.ExpiresAt, &d.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// ActivityRepo appends and reads the activity_logs audit trail.  The
// table is append-only; there are no update or delete statements.
// Append satisfies audit.Sink.
type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

// Append inserts one audit entry.
func (r *ActivityRepo) Append(ctx context.Context, e model.ActivityLogEntry) error {
    _, err := r.DB.ExecContext(ctx,
        `INSERT INTO activity_logs (user_id, action, entity_type, entity_ref, detail, ip_address, created_at)
         VALUES (?,?,?,?,?,?,?)`,
        e.UserID, e.Action, e.EntityType, e.EntityRef, e.Detail, e.IPAddress,
        e.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
    return err
}

const activityColumns = `id, user_id, action, entity_type, entity_ref, detail, ip_address, created_at`

// List returns the newest entries first, optionally filtered by
// acting user and/or action name.  limit is capped at 500.
func (r *ActivityRepo) List(ctx context.Context, userID uint64, action string, limit int) ([]model.ActivityLogEntry, error) {
    if limit <= 0 || limit > 500 {
        limit = 500
    }
    query := `SELECT ` + activityColumns + ` FROM activity_logs WHERE 1=1`
    var args []any
    if userID != 0 {
        query += ` AND user_id = ?`
        args = append(args, userID)
    }
    if action != "" {
        query += ` AND action = ?`
        args = append(args, action)
    }
    query += ` ORDER BY id DESC LIMIT ?`
    args = append(args, limit)

    rows, err := r.DB.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.ActivityLogEntry, 0)
    for rows.Next() {
        var e model.ActivityLogEntry
        if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityRef,
            &e.Detail, &e.IPAddress, &e.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, e)
    }
    return out, rows.Err()
}

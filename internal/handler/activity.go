package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/repository"
)

// ActivityHandler exposes the audit trail to admins.
type ActivityHandler struct {
    Activity *repository.ActivityRepo
}

func NewActivityHandler(activity *repository.ActivityRepo) *ActivityHandler {
    if activity == nil {
        panic("nil repository passed to NewActivityHandler")
    }
    return &ActivityHandler{Activity: activity}
}

type activityView struct {
    ID         uint64    `json:"id"`
    UserID     uint64    `json:"user_id"`
    Action     string    `json:"action"`
    EntityType string    `json:"entity_type"`
    EntityRef  string    `json:"entity_ref"`
    Detail     string    `json:"detail"`
    IPAddress  string    `json:"ip_address,omitempty"`
    CreatedAt  time.Time `json:"created_at"`
}

// List handles GET /v1/admin/activity.  Filters: user_id, action,
// limit (newest first, capped by the repository).
func (h *ActivityHandler) List(c echo.Context) error {
    var userID uint64
    if raw := c.QueryParam("user_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
        }
        userID = id
    }
    limit := 0
    if raw := c.QueryParam("limit"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
        }
        limit = n
    }
    entries, err := h.Activity.List(c.Request().Context(), userID, c.QueryParam("action"), limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]activityView, 0, len(entries))
    for _, e := range entries {
        out = append(out, activityView{
            ID:         e.ID,
            UserID:     e.UserID,
            Action:     e.Action,
            EntityType: e.EntityType,
            EntityRef:  e.EntityRef,
            Detail:     e.Detail,
            IPAddress:  e.IPAddress,
            CreatedAt:  e.CreatedAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

package middleware

// identity.go holds helpers for reading the authenticated identity
// that JWTAuth stashed in the Echo context.  Claim values arrive as
// the types encoding/json produced when the token was parsed, so
// numeric subjects show up as float64.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// CurrentUserID returns the authenticated user's numeric ID, or
// (0, false) when the request carries no valid subject claim.
func CurrentUserID(c echo.Context) (uint64, bool) {
    switch v := c.Get("user_id").(type) {
    case float64:
        if v < 0 {
            return 0, false
        }
        return uint64(v), true
    case uint64:
        return v, true
    case int64:
        if v < 0 {
            return 0, false
        }
        return uint64(v), true
    case string:
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return 0, false
        }
        return id, true
    default:
        return 0, false
    }
}

// CurrentRole returns the authenticated user's role.  The second
// return is false when the role claim is absent or not a known role.
func CurrentRole(c echo.Context) (model.UserRole, bool) {
    s, ok := c.Get("role").(string)
    if !ok {
        return "", false
    }
    role, ok := model.ParseUserRole(s)
    if !ok {
        return "", false
    }
    return role, true
}

// identityKey renders the current user as a rate-limit key segment,
// falling back to "anon" for unauthenticated traffic.
func identityKey(c echo.Context) string {
    if id, ok := CurrentUserID(c); ok {
        return strconv.FormatUint(id, 10)
    }
    return "anon"
}

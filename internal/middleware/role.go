package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// RequireRole enforces that the authenticated user holds one of the
// given roles.  It reads the "role" context value set by JWTAuth, so
// it must run after that middleware.  Unknown or missing roles get a
// 403 rather than a 401: the token was valid, the holder just is not
// entitled to the resource.
func RequireRole(roles ...model.UserRole) echo.MiddlewareFunc {
    allowed := make(map[model.UserRole]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := CurrentRole(c)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health is the liveness endpoint used by load balancers.  It answers
// before any dependency is touched, so it only proves the process is
// serving.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

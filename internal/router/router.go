package router // route registration for the airline booking API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/handler"
    "github.com/iliyamo/airline-seat-reservation/internal/middleware"
    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// RegisterRoutes registers routes that carry no authentication at
// all.  Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication endpoints.  Register, login,
// refresh and token-based logout live under /v1/auth and need no
// session; /v1/me and the logout-everywhere variant sit behind JWT
// auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    // Logout with a refresh_token body works without an access token,
    // so an expired session can still be terminated.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    // Behind JWT auth an empty body revokes every session.
    auth.POST("/logout", a.Logout)
}

// RegisterPublic wires the unauthenticated browse surface.  All
// routes are GETs and sit behind the response cache when one is
// configured; pass nil to skip caching.
func RegisterPublic(e *echo.Echo, browse *handler.BrowseHandler, fleet *handler.FleetHandler, booking *handler.BookingHandler, cache echo.MiddlewareFunc) {
    mws := []echo.MiddlewareFunc{}
    if cache != nil {
        mws = append(mws, cache)
    }
    g := e.Group("/v1", mws...)
    g.GET("/airports", fleet.ListAirports)
    g.GET("/routes", fleet.ListRoutes)
    g.GET("/flights", browse.SearchFlights)
    g.GET("/flights/:id", browse.GetFlight)
    g.GET("/flights/:id/availability", booking.GetFlightAvailability)
}

// RegisterBooking wires the booking flow.  Every route requires a
// valid JWT; any authenticated role may book, staff and admins are
// not locked out of holding seats for themselves.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RolePassenger, model.RoleStaff, model.RoleAdmin),
    )
    g.POST("/flights/:id/seats/:seatNumber/hold", h.HoldSeat)
    g.POST("/reservations/:id/confirm", h.ConfirmReservation)
    g.GET("/reservations/:id", h.GetReservation)
    g.DELETE("/reservations/:id", h.CancelReservation)
    g.GET("/my-reservations", h.ListMyReservations)
}

// RegisterAdmin wires the fleet and flight management surface for
// staff and admins.  The audit trail listing is admin-only.
func RegisterAdmin(e *echo.Echo, fleet *handler.FleetHandler, flights *handler.FlightAdminHandler, activity *handler.ActivityHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleStaff, model.RoleAdmin),
    )
    g.POST("/airports", fleet.CreateAirport)
    g.POST("/routes", fleet.CreateRoute)
    g.GET("/routes", fleet.ListRoutes)
    g.POST("/aircraft", fleet.CreateAircraft)
    g.GET("/aircraft", fleet.ListAircraft)
    g.POST("/flights", flights.CreateFlight)
    g.PATCH("/flights/:id/status", flights.UpdateFlightStatus)

    admin := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    )
    admin.GET("/activity", activity.List)
}

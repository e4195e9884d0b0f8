package handler

import (
    "errors"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/audit"
    "github.com/iliyamo/airline-seat-reservation/internal/booking"
    "github.com/iliyamo/airline-seat-reservation/internal/model"
    "github.com/iliyamo/airline-seat-reservation/internal/repository"
)

// FlightAdminHandler covers scheduling and lifecycle management of
// flights.  Creating a flight seeds its entire seat inventory from
// the aircraft's cabin configuration in the same request.
type FlightAdminHandler struct {
    Flights  *repository.FlightRepo
    Routes   *repository.RouteRepo
    Aircraft *repository.AircraftRepo
    Audit    *audit.Recorder
}

func NewFlightAdminHandler(flights *repository.FlightRepo, routes *repository.RouteRepo, aircraft *repository.AircraftRepo, rec *audit.Recorder) *FlightAdminHandler {
    if flights == nil || routes == nil || aircraft == nil {
        panic("nil repository passed to NewFlightAdminHandler")
    }
    return &FlightAdminHandler{Flights: flights, Routes: routes, Aircraft: aircraft, Audit: rec}
}

type createFlightReq struct {
    FlightNumber       string    `json:"flight_number"`
    RouteID            uint64    `json:"route_id"`
    AircraftID         uint64    `json:"aircraft_id"`
    DepartureAt        time.Time `json:"departure_at"`
    ArrivalAt          time.Time `json:"arrival_at"`
    PriceMultiplierBps uint32    `json:"price_multiplier_bps"`
    Gate               *string   `json:"gate"`
}

// CreateFlight handles POST /v1/admin/flights.  The availability
// counters start at the aircraft capacity and the seat map is seeded
// in the same transaction, so capacity arithmetic holds from the
// first request.
func (h *FlightAdminHandler) CreateFlight(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createFlightReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    number := strings.ToUpper(strings.TrimSpace(req.FlightNumber))
    if number == "" || req.RouteID == 0 || req.AircraftID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_number, route_id and aircraft_id required"})
    }
    if req.DepartureAt.IsZero() || req.ArrivalAt.IsZero() || !req.ArrivalAt.After(req.DepartureAt) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure_at must precede arrival_at"})
    }
    if !req.DepartureAt.After(time.Now().UTC()) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure_at must be in the future"})
    }
    ctx := c.Request().Context()

    route, err := h.Routes.GetByID(ctx, req.RouteID)
    if err != nil {
        if errors.Is(err, repository.ErrRouteNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !route.IsActive {
        return c.JSON(http.StatusConflict, echo.Map{"error": "route is inactive"})
    }
    ac, err := h.Aircraft.GetByID(ctx, req.AircraftID)
    if err != nil {
        if errors.Is(err, repository.ErrAircraftNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "aircraft not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !ac.IsActive {
        return c.JSON(http.StatusConflict, echo.Map{"error": "aircraft is inactive"})
    }

    mult := req.PriceMultiplierBps
    if mult == 0 {
        mult = booking.DefaultMultiplierBps
    }
    f := model.Flight{
        FlightNumber:       number,
        RouteID:            route.ID,
        AircraftID:         ac.ID,
        DepartureAt:        req.DepartureAt.UTC(),
        ArrivalAt:          req.ArrivalAt.UTC(),
        Status:             model.FlightScheduled,
        AvailableEconomy:   ac.EconomySeats,
        AvailableBusiness:  ac.BusinessSeats,
        AvailableFirst:     ac.FirstSeats,
        PriceMultiplierBps: mult,
        Gate:               req.Gate,
    }
    // Flight row and seat map commit or roll back together: a 500
    // here never leaves a flight whose counters have no seats.
    err = h.Flights.CreateWithSeats(ctx, &f, func(flightID uint64) []model.Seat {
        return buildSeatMap(flightID, ac)
    })
    if err != nil {
        if errors.Is(err, repository.ErrFlightNumberExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "flight number already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create flight failed"})
    }

    h.Audit.Record(model.ActivityLogEntry{
        UserID:     userID,
        Action:     model.ActionCreateFlight,
        EntityType: "flight",
        EntityRef:  fmt.Sprint(f.ID),
        Detail:     fmt.Sprintf("number=%s seats=%d", f.FlightNumber, ac.TotalSeats),
        IPAddress:  c.RealIP(),
    })
    return c.JSON(http.StatusCreated, echo.Map{
        "id":            f.ID,
        "flight_number": f.FlightNumber,
        "status":        f.Status,
        "total_seats":   ac.TotalSeats,
    })
}

type statusReq struct {
    Status string `json:"status"`
}

// UpdateFlightStatus handles PATCH /v1/admin/flights/:id/status.  The
// transition is validated against the lifecycle machine and applied
// with a compare-and-swap, so two concurrent updates cannot both win.
func (h *FlightAdminHandler) UpdateFlightStatus(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    flightID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    var req statusReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    next, ok := model.ParseFlightStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }
    ctx := c.Request().Context()

    f, err := h.Flights.GetByID(ctx, flightID)
    if err != nil {
        if errors.Is(err, repository.ErrFlightNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !f.Status.CanTransitionTo(next) {
        return c.JSON(http.StatusConflict, echo.Map{
            "error": fmt.Sprintf("cannot transition from %s to %s", f.Status, next),
        })
    }
    swapped, err := h.Flights.UpdateStatus(ctx, flightID, f.Status, next)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
    }
    if !swapped {
        return c.JSON(http.StatusConflict, echo.Map{"error": "flight status changed concurrently"})
    }

    h.Audit.Record(model.ActivityLogEntry{
        UserID:     userID,
        Action:     model.ActionFlightStatus,
        EntityType: "flight",
        EntityRef:  fmt.Sprint(flightID),
        Detail:     fmt.Sprintf("%s -> %s", f.Status, next),
        IPAddress:  c.RealIP(),
    })
    return c.JSON(http.StatusOK, echo.Map{"id": flightID, "status": next})
}

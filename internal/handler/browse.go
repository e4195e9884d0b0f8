// This file defines the public browse API: unauthenticated users can
// list airports, search flights and inspect a single flight without
// an account.  Responses carry only passenger-facing fields.
package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/booking"
    "github.com/iliyamo/airline-seat-reservation/internal/model"
    "github.com/iliyamo/airline-seat-reservation/internal/repository"
)

// BrowseHandler aggregates repositories for the public browse routes.
type BrowseHandler struct {
    Flights  *repository.FlightRepo
    Routes   *repository.RouteRepo
    Airports *repository.AirportRepo
}

func NewBrowseHandler(flights *repository.FlightRepo, routes *repository.RouteRepo, airports *repository.AirportRepo) *BrowseHandler {
    if flights == nil || routes == nil || airports == nil {
        panic("nil repository passed to NewBrowseHandler")
    }
    return &BrowseHandler{Flights: flights, Routes: routes, Airports: airports}
}

// flightListItem is one row of a search result.
type flightListItem struct {
    ID                uint64    `json:"id"`
    FlightNumber      string    `json:"flight_number"`
    Origin            string    `json:"origin"`
    Destination       string    `json:"destination"`
    DepartureAt       time.Time `json:"departure_at"`
    ArrivalAt         time.Time `json:"arrival_at"`
    Status            string    `json:"status"`
    AvailableEconomy  uint32    `json:"available_economy"`
    AvailableBusiness uint32    `json:"available_business"`
    AvailableFirst    uint32    `json:"available_first"`
    Gate              *string   `json:"gate,omitempty"`
}

// resolveAirport turns an optional query value (numeric ID or airport
// code) into an airport ID; empty input yields zero with no error.
func (h *BrowseHandler) resolveAirport(c echo.Context, raw string) (uint64, error) {
    if raw == "" {
        return 0, nil
    }
    if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id != 0 {
        return id, nil
    }
    a, err := h.Airports.GetByCode(c.Request().Context(), raw)
    if err != nil {
        return 0, err
    }
    return a.ID, nil
}

// SearchFlights handles GET /v1/flights.  Supported filters: origin,
// destination (airport ID or code) and date (YYYY-MM-DD, UTC day).
func (h *BrowseHandler) SearchFlights(c echo.Context) error {
    originID, err := h.resolveAirport(c, c.QueryParam("origin"))
    if err != nil {
        if errors.Is(err, repository.ErrAirportNotFound) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown origin airport"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    destinationID, err := h.resolveAirport(c, c.QueryParam("destination"))
    if err != nil {
        if errors.Is(err, repository.ErrAirportNotFound) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown destination airport"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    var day *time.Time
    if raw := c.QueryParam("date"); raw != "" {
        d, err := time.Parse("2006-01-02", raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
        }
        day = &d
    }

    ctx := c.Request().Context()
    flights, err := h.Flights.Search(ctx, originID, destinationID, day)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    // Resolve airport codes per route; searches touch few distinct
    // routes so a small cache avoids repeated lookups.
    routeCodes := map[uint64][2]string{}
    out := make([]flightListItem, 0, len(flights))
    for _, f := range flights {
        codes, ok := routeCodes[f.RouteID]
        if !ok {
            rt, err := h.Routes.GetByID(ctx, f.RouteID)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
            }
            origin, err := h.Airports.GetByID(ctx, rt.OriginAirportID)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
            }
            dest, err := h.Airports.GetByID(ctx, rt.DestinationAirportID)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
            }
            codes = [2]string{origin.Code, dest.Code}
            routeCodes[f.RouteID] = codes
        }
        out = append(out, flightListItem{
            ID:                f.ID,
            FlightNumber:      f.FlightNumber,
            Origin:            codes[0],
            Destination:       codes[1],
            DepartureAt:       f.DepartureAt,
            ArrivalAt:         f.ArrivalAt,
            Status:            string(f.Status),
            AvailableEconomy:  f.AvailableEconomy,
            AvailableBusiness: f.AvailableBusiness,
            AvailableFirst:    f.AvailableFirst,
            Gate:              f.Gate,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetFlight handles GET /v1/flights/:id with base fares per class so
// clients can show indicative prices before seat selection.
func (h *BrowseHandler) GetFlight(c echo.Context) error {
    flightID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    ctx := c.Request().Context()
    f, err := h.Flights.GetByID(ctx, flightID)
    if err != nil {
        if errors.Is(err, repository.ErrFlightNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    rt, err := h.Routes.GetByID(ctx, f.RouteID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    origin, err := h.Airports.GetByID(ctx, rt.OriginAirportID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    dest, err := h.Airports.GetByID(ctx, rt.DestinationAirportID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    // Indicative fare per class: the quote for a seat with no
    // surcharge.  The binding price is still computed at confirm.
    fares := echo.Map{}
    for _, cl := range []model.SeatClass{model.SeatClassEconomy, model.SeatClassBusiness, model.SeatClassFirst} {
        fares[string(cl)] = booking.Quote(rt, f, model.Seat{Class: cl})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "id":            f.ID,
        "flight_number": f.FlightNumber,
        "origin":        echo.Map{"code": origin.Code, "city": origin.City},
        "destination":   echo.Map{"code": dest.Code, "city": dest.City},
        "departure_at":  f.DepartureAt,
        "arrival_at":    f.ArrivalAt,
        "status":        f.Status,
        "gate":          f.Gate,
        "availability": echo.Map{
            "ECONOMY":  f.AvailableEconomy,
            "BUSINESS": f.AvailableBusiness,
            "FIRST":    f.AvailableFirst,
        },
        "base_fare_cents": fares,
    })
}

package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
    "github.com/iliyamo/airline-seat-reservation/internal/repository"
)

// FleetHandler covers the staff/admin surface for the static fleet
// data: airports, routes and aircraft.  These records are created
// rarely and treated as immutable afterwards.
type FleetHandler struct {
    Airports *repository.AirportRepo
    Routes   *repository.RouteRepo
    Aircraft *repository.AircraftRepo
}

func NewFleetHandler(airports *repository.AirportRepo, routes *repository.RouteRepo, aircraft *repository.AircraftRepo) *FleetHandler {
    if airports == nil || routes == nil || aircraft == nil {
        panic("nil repository passed to NewFleetHandler")
    }
    return &FleetHandler{Airports: airports, Routes: routes, Aircraft: aircraft}
}

// ----- airports -----

type createAirportReq struct {
    Code     string `json:"code"`
    Name     string `json:"name"`
    City     string `json:"city"`
    Country  string `json:"country"`
    Timezone string `json:"timezone"`
}

// CreateAirport handles POST /v1/admin/airports.
func (h *FleetHandler) CreateAirport(c echo.Context) error {
    var req createAirportReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    code := strings.ToUpper(strings.TrimSpace(req.Code))
    if !model.ValidAirportCode(code) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "code must be 2-3 upper-case letters"})
    }
    if strings.TrimSpace(req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    a := model.Airport{
        Code:     code,
        Name:     strings.TrimSpace(req.Name),
        City:     strings.TrimSpace(req.City),
        Country:  strings.TrimSpace(req.Country),
        Timezone: strings.TrimSpace(req.Timezone),
    }
    if err := h.Airports.Create(c.Request().Context(), &a); err != nil {
        if errors.Is(err, repository.ErrAirportCodeExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "airport code already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create airport failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": a.ID, "code": a.Code})
}

// ListAirports handles GET /v1/airports (public browse).
func (h *FleetHandler) ListAirports(c echo.Context) error {
    airports, err := h.Airports.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    type airportView struct {
        ID      uint64 `json:"id"`
        Code    string `json:"code"`
        Name    string `json:"name"`
        City    string `json:"city"`
        Country string `json:"country"`
    }
    out := make([]airportView, 0, len(airports))
    for _, a := range airports {
        out = append(out, airportView{ID: a.ID, Code: a.Code, Name: a.Name, City: a.City, Country: a.Country})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ----- routes -----

type createRouteReq struct {
    OriginAirportID      uint64 `json:"origin_airport_id"`
    DestinationAirportID uint64 `json:"destination_airport_id"`
    DistanceKM           uint32 `json:"distance_km"`
    DurationMin          uint32 `json:"duration_min"`
    BaseEconomyCents     uint32 `json:"base_economy_cents"`
    BaseBusinessCents    uint32 `json:"base_business_cents"`
    BaseFirstCents       uint32 `json:"base_first_cents"`
}

// CreateRoute handles POST /v1/admin/routes.  Both endpoints must
// exist and differ.
func (h *FleetHandler) CreateRoute(c echo.Context) error {
    var req createRouteReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.OriginAirportID == 0 || req.DestinationAirportID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination required"})
    }
    if req.OriginAirportID == req.DestinationAirportID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination must differ"})
    }
    if req.BaseEconomyCents == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "base_economy_cents required"})
    }
    ctx := c.Request().Context()
    for _, id := range []uint64{req.OriginAirportID, req.DestinationAirportID} {
        if _, err := h.Airports.GetByID(ctx, id); err != nil {
            if errors.Is(err, repository.ErrAirportNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "airport not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }
    rt := model.Route{
        OriginAirportID:      req.OriginAirportID,
        DestinationAirportID: req.DestinationAirportID,
        DistanceKM:           req.DistanceKM,
        DurationMin:          req.DurationMin,
        BaseEconomyCents:     req.BaseEconomyCents,
        BaseBusinessCents:    req.BaseBusinessCents,
        BaseFirstCents:       req.BaseFirstCents,
        IsActive:             true,
    }
    if err := h.Routes.Create(ctx, &rt); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create route failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": rt.ID})
}

// ListRoutes handles GET /v1/admin/routes.
func (h *FleetHandler) ListRoutes(c echo.Context) error {
    activeOnly := c.QueryParam("active") == "true"
    routes, err := h.Routes.List(c.Request().Context(), activeOnly)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    type routeView struct {
        ID                   uint64 `json:"id"`
        OriginAirportID      uint64 `json:"origin_airport_id"`
        DestinationAirportID uint64 `json:"destination_airport_id"`
        DistanceKM           uint32 `json:"distance_km"`
        DurationMin          uint32 `json:"duration_min"`
        BaseEconomyCents     uint32 `json:"base_economy_cents"`
        BaseBusinessCents    uint32 `json:"base_business_cents"`
        BaseFirstCents       uint32 `json:"base_first_cents"`
        IsActive             bool   `json:"is_active"`
    }
    out := make([]routeView, 0, len(routes))
    for _, rt := range routes {
        out = append(out, routeView{
            ID:                   rt.ID,
            OriginAirportID:      rt.OriginAirportID,
            DestinationAirportID: rt.DestinationAirportID,
            DistanceKM:           rt.DistanceKM,
            DurationMin:          rt.DurationMin,
            BaseEconomyCents:     rt.BaseEconomyCents,
            BaseBusinessCents:    rt.BaseBusinessCents,
            BaseFirstCents:       rt.BaseFirstCents,
            IsActive:             rt.IsActive,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ----- aircraft -----

type createAircraftReq struct {
    TailNumber    string `json:"tail_number"`
    Model         string `json:"model"`
    Manufacturer  string `json:"manufacturer"`
    TotalSeats    uint32 `json:"total_seats"`
    EconomySeats  uint32 `json:"economy_seats"`
    BusinessSeats uint32 `json:"business_seats"`
    FirstSeats    uint32 `json:"first_seats"`
}

// CreateAircraft handles POST /v1/admin/aircraft.  The cabin counts
// must sum to the declared total.
func (h *FleetHandler) CreateAircraft(c echo.Context) error {
    var req createAircraftReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    tail := strings.ToUpper(strings.TrimSpace(req.TailNumber))
    if tail == "" || strings.TrimSpace(req.Model) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "tail_number and model required"})
    }
    if req.TotalSeats == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_seats must be positive"})
    }
    a := model.Aircraft{
        TailNumber:    tail,
        Model:         strings.TrimSpace(req.Model),
        Manufacturer:  strings.TrimSpace(req.Manufacturer),
        TotalSeats:    req.TotalSeats,
        EconomySeats:  req.EconomySeats,
        BusinessSeats: req.BusinessSeats,
        FirstSeats:    req.FirstSeats,
        IsActive:      true,
    }
    if err := h.Aircraft.Create(c.Request().Context(), &a); err != nil {
        if errors.Is(err, model.ErrSeatCountMismatch) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        if errors.Is(err, repository.ErrTailNumberExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "tail number already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create aircraft failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": a.ID, "tail_number": a.TailNumber})
}

// ListAircraft handles GET /v1/admin/aircraft.
func (h *FleetHandler) ListAircraft(c echo.Context) error {
    aircraft, err := h.Aircraft.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    type aircraftView struct {
        ID            uint64 `json:"id"`
        TailNumber    string `json:"tail_number"`
        Model         string `json:"model"`
        Manufacturer  string `json:"manufacturer"`
        TotalSeats    uint32 `json:"total_seats"`
        EconomySeats  uint32 `json:"economy_seats"`
        BusinessSeats uint32 `json:"business_seats"`
        FirstSeats    uint32 `json:"first_seats"`
        IsActive      bool   `json:"is_active"`
    }
    out := make([]aircraftView, 0, len(aircraft))
    for _, a := range aircraft {
        out = append(out, aircraftView{
            ID:            a.ID,
            TailNumber:    a.TailNumber,
            Model:         a.Model,
            Manufacturer:  a.Manufacturer,
            TotalSeats:    a.TotalSeats,
            EconomySeats:  a.EconomySeats,
            BusinessSeats: a.BusinessSeats,
            FirstSeats:    a.FirstSeats,
            IsActive:      a.IsActive,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

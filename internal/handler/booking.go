package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/booking"
    "github.com/iliyamo/airline-seat-reservation/internal/config"
    "github.com/iliyamo/airline-seat-reservation/internal/model"
    "github.com/iliyamo/airline-seat-reservation/internal/queue"
    "github.com/iliyamo/airline-seat-reservation/internal/repository"
    queuepub "github.com/iliyamo/airline-seat-reservation/internal/service"
)

// BookingHandler exposes the hold/confirm/cancel flow to passengers.
// All state transitions go through the coordinator; the handler only
// validates input, enforces ownership and shapes responses.
type BookingHandler struct {
    Cfg          config.Config
    Coordinator  *booking.Coordinator
    Reservations *repository.ReservationRepo
}

func NewBookingHandler(cfg config.Config, coord *booking.Coordinator, res *repository.ReservationRepo) *BookingHandler {
    if coord == nil {
        panic("nil coordinator passed to NewBookingHandler")
    }
    return &BookingHandler{Cfg: cfg, Coordinator: coord, Reservations: res}
}

type holdReq struct {
    TTLSeconds int `json:"ttl_seconds"` // optional, clamped to the configured maximum
}

type reservationResp struct {
    ID         string    `json:"id"`
    FlightID   uint64    `json:"flight_id"`
    SeatNumber string    `json:"seat_number"`
    Class      string    `json:"class"`
    Status     string    `json:"status"`
    PriceCents uint32    `json:"price_cents,omitempty"`
    ExpiresAt  time.Time `json:"expires_at"`
}

func toReservationResp(r model.Reservation) reservationResp {
    return reservationResp{
        ID:         r.ID,
        FlightID:   r.FlightID,
        SeatNumber: r.SeatNumber,
        Class:      string(r.Class),
        Status:     string(r.Status),
        PriceCents: r.PriceCents,
        ExpiresAt:  r.ExpiresAt,
    }
}

// holdTTL resolves the effective hold TTL from an optional client
// request, clamped to [1s, HoldTTLMax].
func (h *BookingHandler) holdTTL(requested int) time.Duration {
    if requested <= 0 {
        return h.Cfg.HoldTTL
    }
    ttl := time.Duration(requested) * time.Second
    if ttl > h.Cfg.HoldTTLMax {
        return h.Cfg.HoldTTLMax
    }
    return ttl
}

// HoldSeat handles POST /v1/flights/:id/seats/:seatNumber/hold.  It
// claims the seat for the caller or fails fast with 409 when the seat
// is taken; there is no queueing.
func (h *BookingHandler) HoldSeat(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    flightID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    seatNumber := strings.ToUpper(strings.TrimSpace(c.Param("seatNumber")))
    if seatNumber == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat number required"})
    }
    var req holdReq
    _ = c.Bind(&req) // empty body is fine, defaults apply

    res, err := h.Coordinator.Hold(c.Request().Context(), flightID, seatNumber, userID, h.holdTTL(req.TTLSeconds))
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrFlightNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
        case errors.Is(err, booking.ErrSeatNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
        case errors.Is(err, booking.ErrFlightNotBookable):
            return c.JSON(http.StatusConflict, echo.Map{"error": "flight is not open for booking"})
        case errors.Is(err, booking.ErrSeatUnavailable):
            return c.JSON(http.StatusConflict, echo.Map{"error": "seat is not available"})
        case errors.Is(err, booking.ErrCapacityExceeded):
            return c.JSON(http.StatusConflict, echo.Map{"error": "cabin class is sold out"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hold failed"})
    }
    return c.JSON(http.StatusCreated, toReservationResp(res))
}

// ConfirmReservation handles POST /v1/reservations/:id/confirm.  The
// final price is computed server-side; a price sent by the client is
// ignored.  Confirming an already confirmed reservation returns the
// stored result unchanged.
func (h *BookingHandler) ConfirmReservation(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    resID := strings.TrimSpace(c.Param("id"))
    if resID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx := c.Request().Context()

    cur, err := h.Coordinator.Reservation(ctx, resID)
    if err != nil {
        if errors.Is(err, booking.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
    }
    if cur.UserID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    wasConfirmed := cur.Status == model.ReservationConfirmed

    res, err := h.Coordinator.Confirm(ctx, resID)
    if err != nil {
        switch {
        case errors.Is(err, booking.ErrReservationNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        case errors.Is(err, booking.ErrExpired):
            return c.JSON(http.StatusGone, echo.Map{"error": "hold expired"})
        case errors.Is(err, booking.ErrInvalidState):
            return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not confirmable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "confirm failed"})
    }

    if !wasConfirmed {
        h.publishConfirmed(res)
    }
    return c.JSON(http.StatusOK, toReservationResp(res))
}

// publishConfirmed emits the reservation.confirmed broker event in
// the background.  Failures are logged by the publisher; the HTTP
// response never waits on the broker.
func (h *BookingHandler) publishConfirmed(res model.Reservation) {
    if h.Reservations == nil {
        return
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        cc, err := h.Reservations.GetConfirmContext(ctx, res.ID)
        if err != nil {
            return
        }
        _ = queuepub.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
            ReservationID: res.ID,
            UserID:        res.UserID,
            UserEmail:     cc.UserEmail,
            FlightID:      res.FlightID,
            FlightNumber:  cc.FlightNumber,
            Origin:        cc.Origin,
            Destination:   cc.Destination,
            DepartureAt:   cc.DepartureAt.UTC().Format(time.RFC3339),
            SeatNumber:    res.SeatNumber,
            Class:         string(res.Class),
            PriceCents:    res.PriceCents,
            ConfirmedAt:   res.UpdatedAt.UTC().Format(time.RFC3339),
        })
    }()
}

// CancelReservation handles DELETE /v1/reservations/:id.  Cancelling
// twice is a no-op success, which keeps the endpoint safe to retry.
func (h *BookingHandler) CancelReservation(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    resID := strings.TrimSpace(c.Param("id"))
    if resID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx := c.Request().Context()

    cur, err := h.Coordinator.Reservation(ctx, resID)
    if err != nil {
        if errors.Is(err, booking.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
    }
    if cur.UserID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }

    if err := h.Coordinator.Cancel(ctx, resID, userID); err != nil {
        if errors.Is(err, booking.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// GetReservation handles GET /v1/reservations/:id for the owner.
func (h *BookingHandler) GetReservation(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    resID := strings.TrimSpace(c.Param("id"))
    if resID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    res, err := h.Coordinator.Reservation(c.Request().Context(), resID)
    if err != nil {
        if errors.Is(err, booking.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
    }
    if res.UserID != userID {
        // Hide existence of other users' reservations.
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": toReservationResp(res)})
}

// ListMyReservations handles GET /v1/my-reservations.
func (h *BookingHandler) ListMyReservations(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Reservations.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

type seatView struct {
    SeatNumber     string `json:"seat_number"`
    Class          string `json:"class"`
    Status         string `json:"status"`
    IsWindow       bool   `json:"is_window"`
    IsAisle        bool   `json:"is_aisle"`
    SurchargeCents uint32 `json:"surcharge_cents"`
}

// GetFlightAvailability handles GET /v1/flights/:id/availability.  It
// returns the per-class counters plus the full seat map.  The route
// sits behind the response cache; a short TTL keeps the map fresh
// enough for seat pickers.
func (h *BookingHandler) GetFlightAvailability(c echo.Context) error {
    flightID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    av, err := h.Coordinator.Availability(c.Request().Context(), flightID)
    if err != nil {
        if errors.Is(err, booking.ErrFlightNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability failed"})
    }
    seats := make([]seatView, 0, len(av.Seats))
    for _, s := range av.Seats {
        seats = append(seats, seatView{
            SeatNumber:     s.SeatNumber,
            Class:          string(s.Class),
            Status:         string(s.Status),
            IsWindow:       s.IsWindow,
            IsAisle:        s.IsAisle,
            SurchargeCents: s.SurchargeCents,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "flight_id": av.FlightID,
        "status":    av.Status,
        "classes":   av.Classes,
        "seats":     seats,
    })
}

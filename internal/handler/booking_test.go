package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-seat-reservation/internal/booking"
    "github.com/iliyamo/airline-seat-reservation/internal/config"
    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

func newBookingTestHandler(t *testing.T) (*BookingHandler, *booking.MemoryStore) {
    t.Helper()
    store := booking.NewMemoryStore()
    store.AddRoute(model.Route{ID: 1, BaseEconomyCents: 50000, IsActive: true})
    store.AddFlight(model.Flight{
        ID:               1,
        FlightNumber:     "IA204",
        RouteID:          1,
        Status:           model.FlightScheduled,
        DepartureAt:      time.Now().UTC().Add(48 * time.Hour),
        ArrivalAt:        time.Now().UTC().Add(51 * time.Hour),
        AvailableEconomy: 2,
    })
    store.AddSeat(model.Seat{FlightID: 1, SeatNumber: "7A", Class: model.SeatClassEconomy, IsWindow: true, SurchargeCents: booking.WindowSurchargeCents})
    store.AddSeat(model.Seat{FlightID: 1, SeatNumber: "7B", Class: model.SeatClassEconomy, IsAisle: true, SurchargeCents: booking.AisleSurchargeCents})

    coord := booking.NewCoordinator(store, nil, nil)
    cfg := config.Config{HoldTTL: 5 * time.Minute, HoldTTLMax: 15 * time.Minute}
    return NewBookingHandler(cfg, coord, nil), store
}

// newBookingContext builds an echo context carrying the claims that
// JWTAuth would have injected.
func newBookingContext(e *echo.Echo, method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
    var reader *strings.Reader
    if body == "" {
        reader = strings.NewReader("")
    } else {
        reader = strings.NewReader(body)
    }
    req := httptest.NewRequest(method, target, reader)
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", float64(userID))
    c.Set("role", string(model.RolePassenger))
    return c, rec
}

func TestHoldSeatEndpoint(t *testing.T) {
    h, _ := newBookingTestHandler(t)
    e := echo.New()

    c, rec := newBookingContext(e, http.MethodPost, "/v1/flights/1/seats/7A/hold", "", 1)
    c.SetPath("/v1/flights/:id/seats/:seatNumber/hold")
    c.SetParamNames("id", "seatNumber")
    c.SetParamValues("1", "7A")

    require.NoError(t, h.HoldSeat(c))
    require.Equal(t, http.StatusCreated, rec.Code)

    var resp reservationResp
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.NotEmpty(t, resp.ID)
    assert.Equal(t, "7A", resp.SeatNumber)
    assert.Equal(t, string(model.ReservationHeld), resp.Status)

    // Second hold on the same seat conflicts.
    c2, rec2 := newBookingContext(e, http.MethodPost, "/v1/flights/1/seats/7A/hold", "", 2)
    c2.SetPath("/v1/flights/:id/seats/:seatNumber/hold")
    c2.SetParamNames("id", "seatNumber")
    c2.SetParamValues("1", "7A")
    require.NoError(t, h.HoldSeat(c2))
    assert.Equal(t, http.StatusConflict, rec2.Code)
}

func TestHoldSeatUnknownFlight(t *testing.T) {
    h, _ := newBookingTestHandler(t)
    e := echo.New()
    c, rec := newBookingContext(e, http.MethodPost, "/v1/flights/99/seats/7A/hold", "", 1)
    c.SetPath("/v1/flights/:id/seats/:seatNumber/hold")
    c.SetParamNames("id", "seatNumber")
    c.SetParamValues("99", "7A")
    require.NoError(t, h.HoldSeat(c))
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirmEndpointOwnershipAndPrice(t *testing.T) {
    h, _ := newBookingTestHandler(t)
    e := echo.New()

    c, rec := newBookingContext(e, http.MethodPost, "/v1/flights/1/seats/7B/hold", "", 1)
    c.SetPath("/v1/flights/:id/seats/:seatNumber/hold")
    c.SetParamNames("id", "seatNumber")
    c.SetParamValues("1", "7B")
    require.NoError(t, h.HoldSeat(c))
    require.Equal(t, http.StatusCreated, rec.Code)
    var held reservationResp
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &held))

    // Another user cannot confirm someone else's hold.
    cOther, recOther := newBookingContext(e, http.MethodPost, "/v1/reservations/"+held.ID+"/confirm", "", 2)
    cOther.SetPath("/v1/reservations/:id/confirm")
    cOther.SetParamNames("id")
    cOther.SetParamValues(held.ID)
    require.NoError(t, h.ConfirmReservation(cOther))
    assert.Equal(t, http.StatusForbidden, recOther.Code)

    // The owner confirms; the server-side price wins.
    cOwn, recOwn := newBookingContext(e, http.MethodPost, "/v1/reservations/"+held.ID+"/confirm", `{"price_cents":1}`, 1)
    cOwn.SetPath("/v1/reservations/:id/confirm")
    cOwn.SetParamNames("id")
    cOwn.SetParamValues(held.ID)
    require.NoError(t, h.ConfirmReservation(cOwn))
    require.Equal(t, http.StatusOK, recOwn.Code)
    var confirmed reservationResp
    require.NoError(t, json.Unmarshal(recOwn.Body.Bytes(), &confirmed))
    assert.Equal(t, string(model.ReservationConfirmed), confirmed.Status)
    assert.Equal(t, uint32(50500), confirmed.PriceCents) // base + aisle surcharge
}

func TestCancelEndpointIsRetryable(t *testing.T) {
    h, store := newBookingTestHandler(t)
    e := echo.New()

    c, rec := newBookingContext(e, http.MethodPost, "/v1/flights/1/seats/7A/hold", "", 1)
    c.SetPath("/v1/flights/:id/seats/:seatNumber/hold")
    c.SetParamNames("id", "seatNumber")
    c.SetParamValues("1", "7A")
    require.NoError(t, h.HoldSeat(c))
    var held reservationResp
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &held))

    for i := 0; i < 2; i++ {
        cc, rr := newBookingContext(e, http.MethodDelete, "/v1/reservations/"+held.ID, "", 1)
        cc.SetPath("/v1/reservations/:id")
        cc.SetParamNames("id")
        cc.SetParamValues(held.ID)
        require.NoError(t, h.CancelReservation(cc))
        assert.Equal(t, http.StatusNoContent, rr.Code)
    }

    flight, err := store.GetFlight(c.Request().Context(), 1)
    require.NoError(t, err)
    assert.Equal(t, uint32(2), flight.AvailableEconomy)
}

func TestAvailabilityEndpoint(t *testing.T) {
    h, _ := newBookingTestHandler(t)
    e := echo.New()

    c, _ := newBookingContext(e, http.MethodPost, "/v1/flights/1/seats/7A/hold", "", 1)
    c.SetPath("/v1/flights/:id/seats/:seatNumber/hold")
    c.SetParamNames("id", "seatNumber")
    c.SetParamValues("1", "7A")
    require.NoError(t, h.HoldSeat(c))

    req := httptest.NewRequest(http.MethodGet, "/v1/flights/1/availability", nil)
    rec := httptest.NewRecorder()
    cc := e.NewContext(req, rec)
    cc.SetPath("/v1/flights/:id/availability")
    cc.SetParamNames("id")
    cc.SetParamValues("1")
    require.NoError(t, h.GetFlightAvailability(cc))
    require.Equal(t, http.StatusOK, rec.Code)

    var body struct {
        FlightID uint64 `json:"flight_id"`
        Classes  []struct {
            Class     string `json:"class"`
            Available uint32 `json:"available"`
            Held      uint32 `json:"held"`
        } `json:"classes"`
        Seats []seatView `json:"seats"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
    assert.Equal(t, uint64(1), body.FlightID)
    assert.Len(t, body.Seats, 2)
    for _, cl := range body.Classes {
        if cl.Class == string(model.SeatClassEconomy) {
            assert.Equal(t, uint32(1), cl.Available)
            assert.Equal(t, uint32(1), cl.Held)
        }
    }
}

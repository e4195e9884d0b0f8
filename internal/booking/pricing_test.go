package booking

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

func TestQuote(t *testing.T) {
    route := model.Route{
        BaseEconomyCents:  50000,
        BaseBusinessCents: 120000,
        BaseFirstCents:    300000,
    }

    tests := []struct {
        name   string
        flight model.Flight
        seat   model.Seat
        want   uint32
    }{
        {
            name:   "economy neutral multiplier",
            flight: model.Flight{PriceMultiplierBps: 10000},
            seat:   model.Seat{Class: model.SeatClassEconomy},
            want:   50000,
        },
        {
            name:   "zero multiplier treated as neutral",
            flight: model.Flight{},
            seat:   model.Seat{Class: model.SeatClassEconomy},
            want:   50000,
        },
        {
            name:   "business at 1.5x",
            flight: model.Flight{PriceMultiplierBps: 15000},
            seat:   model.Seat{Class: model.SeatClassBusiness},
            want:   180000,
        },
        {
            name:   "first at 0.8x with window surcharge",
            flight: model.Flight{PriceMultiplierBps: 8000},
            seat:   model.Seat{Class: model.SeatClassFirst, IsWindow: true, SurchargeCents: WindowSurchargeCents},
            want:   241000,
        },
        {
            name:   "aisle surcharge added after scaling",
            flight: model.Flight{PriceMultiplierBps: 12500},
            seat:   model.Seat{Class: model.SeatClassEconomy, IsAisle: true, SurchargeCents: AisleSurchargeCents},
            want:   63000,
        },
        {
            name:   "fractional cents truncate",
            flight: model.Flight{PriceMultiplierBps: 10001},
            seat:   model.Seat{Class: model.SeatClassEconomy},
            want:   50005, // 50000 * 10001 / 10000 = 50005.0
        },
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, Quote(route, tc.flight, tc.seat))
        })
    }
}

func TestQuoteIsDeterministic(t *testing.T) {
    route := model.Route{BaseEconomyCents: 49999}
    flight := model.Flight{PriceMultiplierBps: 13333}
    seat := model.Seat{Class: model.SeatClassEconomy, SurchargeCents: 250}
    first := Quote(route, flight, seat)
    for i := 0; i < 10; i++ {
        assert.Equal(t, first, Quote(route, flight, seat))
    }
}

package handler

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-seat-reservation/internal/booking"
    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

func TestBuildSeatMapCounts(t *testing.T) {
    ac := model.Aircraft{
        TotalSeats:    20,
        FirstSeats:    2,
        BusinessSeats: 6,
        EconomySeats:  12,
    }
    require.NoError(t, ac.Validate())

    seats := buildSeatMap(7, ac)
    require.Len(t, seats, 20)

    byClass := map[model.SeatClass]int{}
    numbers := map[string]bool{}
    for _, s := range seats {
        assert.Equal(t, uint64(7), s.FlightID)
        assert.Equal(t, model.SeatAvailable, s.Status)
        byClass[s.Class]++
        assert.False(t, numbers[s.SeatNumber], "duplicate seat number %s", s.SeatNumber)
        numbers[s.SeatNumber] = true
    }
    assert.Equal(t, 2, byClass[model.SeatClassFirst])
    assert.Equal(t, 6, byClass[model.SeatClassBusiness])
    assert.Equal(t, 12, byClass[model.SeatClassEconomy])
}

func TestBuildSeatMapLayout(t *testing.T) {
    ac := model.Aircraft{TotalSeats: 10, FirstSeats: 4, BusinessSeats: 0, EconomySeats: 6}
    seats := buildSeatMap(1, ac)
    require.Len(t, seats, 10)

    bySeat := map[string]model.Seat{}
    for _, s := range seats {
        bySeat[s.SeatNumber] = s
    }

    // First class fills row 1 with A-D; economy starts on the next row.
    first := bySeat["1A"]
    assert.Equal(t, model.SeatClassFirst, first.Class)
    assert.True(t, first.IsWindow)
    assert.Equal(t, uint32(booking.WindowSurchargeCents), first.SurchargeCents)

    firstAisle := bySeat["1B"]
    assert.True(t, firstAisle.IsAisle)
    assert.Equal(t, uint32(booking.AisleSurchargeCents), firstAisle.SurchargeCents)

    eco := bySeat["2A"]
    require.NotZero(t, eco.SeatNumber, "economy cabin should begin at row 2")
    assert.Equal(t, model.SeatClassEconomy, eco.Class)
    assert.True(t, eco.IsWindow)

    ecoMiddle := bySeat["2B"]
    assert.False(t, ecoMiddle.IsWindow)
    assert.False(t, ecoMiddle.IsAisle)
    assert.Zero(t, ecoMiddle.SurchargeCents)

    ecoAisle := bySeat["2C"]
    assert.True(t, ecoAisle.IsAisle)
}

func TestBuildSeatMapPartialRow(t *testing.T) {
    // 5 economy seats do not fill a 6-across row.
    ac := model.Aircraft{TotalSeats: 5, EconomySeats: 5}
    seats := buildSeatMap(1, ac)
    require.Len(t, seats, 5)
    last := seats[len(seats)-1]
    assert.Equal(t, "1E", last.SeatNumber)
}

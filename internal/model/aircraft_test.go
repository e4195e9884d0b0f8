package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestAircraftValidate(t *testing.T) {
    ok := Aircraft{TotalSeats: 180, EconomySeats: 150, BusinessSeats: 24, FirstSeats: 6}
    assert.NoError(t, ok.Validate())

    short := Aircraft{TotalSeats: 180, EconomySeats: 150, BusinessSeats: 24}
    assert.ErrorIs(t, short.Validate(), ErrSeatCountMismatch)

    over := Aircraft{TotalSeats: 100, EconomySeats: 100, BusinessSeats: 1}
    assert.ErrorIs(t, over.Validate(), ErrSeatCountMismatch)
}

func TestCapacityFor(t *testing.T) {
    a := Aircraft{EconomySeats: 150, BusinessSeats: 24, FirstSeats: 6}
    assert.Equal(t, uint32(150), a.CapacityFor(SeatClassEconomy))
    assert.Equal(t, uint32(24), a.CapacityFor(SeatClassBusiness))
    assert.Equal(t, uint32(6), a.CapacityFor(SeatClassFirst))
}

func TestValidAirportCode(t *testing.T) {
    assert.True(t, ValidAirportCode("IST"))
    assert.True(t, ValidAirportCode("LA"))
    assert.False(t, ValidAirportCode("ist"))
    assert.False(t, ValidAirportCode("ISTA"))
    assert.False(t, ValidAirportCode("I"))
    assert.False(t, ValidAirportCode("I1T"))
}

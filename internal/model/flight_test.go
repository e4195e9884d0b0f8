package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestFlightStatusTransitions(t *testing.T) {
    allowed := map[FlightStatus][]FlightStatus{
        FlightScheduled: {FlightBoarding, FlightDelayed, FlightCancelled},
        FlightDelayed:   {FlightScheduled, FlightBoarding, FlightCancelled},
        FlightBoarding:  {FlightDeparted, FlightDelayed, FlightCancelled},
        FlightDeparted:  {FlightArrived},
        FlightArrived:   {},
        FlightCancelled: {},
    }
    all := []FlightStatus{FlightScheduled, FlightBoarding, FlightDeparted, FlightArrived, FlightCancelled, FlightDelayed}

    for from, nexts := range allowed {
        ok := map[FlightStatus]bool{}
        for _, n := range nexts {
            ok[n] = true
        }
        for _, to := range all {
            assert.Equal(t, ok[to], from.CanTransitionTo(to), "%s -> %s", from, to)
        }
    }
}

func TestFlightStatusSelfTransitionRejected(t *testing.T) {
    for _, s := range []FlightStatus{FlightScheduled, FlightBoarding, FlightDeparted, FlightArrived, FlightCancelled, FlightDelayed} {
        assert.False(t, s.CanTransitionTo(s), "%s -> %s", s, s)
    }
}

func TestBookable(t *testing.T) {
    assert.True(t, FlightScheduled.Bookable())
    assert.True(t, FlightBoarding.Bookable())
    assert.False(t, FlightDelayed.Bookable())
    assert.False(t, FlightDeparted.Bookable())
    assert.False(t, FlightArrived.Bookable())
    assert.False(t, FlightCancelled.Bookable())
}

func TestParseFlightStatus(t *testing.T) {
    got, ok := ParseFlightStatus("BOARDING")
    assert.True(t, ok)
    assert.Equal(t, FlightBoarding, got)

    _, ok = ParseFlightStatus("boarding")
    assert.False(t, ok)
    _, ok = ParseFlightStatus("")
    assert.False(t, ok)
}

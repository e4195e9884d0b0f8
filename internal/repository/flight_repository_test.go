package repository

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

func newFlightRepoMock(t *testing.T) (*FlightRepo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewFlightRepo(db), mock
}

func testFlight() model.Flight {
    dep := time.Date(2026, 10, 2, 8, 30, 0, 0, time.UTC)
    return model.Flight{
        FlightNumber:       "IA204",
        RouteID:            1,
        AircraftID:         1,
        DepartureAt:        dep,
        ArrivalAt:          dep.Add(3 * time.Hour),
        Status:             model.FlightScheduled,
        AvailableEconomy:   2,
        PriceMultiplierBps: 10000,
    }
}

func TestCreateWithSeatsCommitsFlightAndSeatsTogether(t *testing.T) {
    repo, mock := newFlightRepoMock(t)

    mock.ExpectBegin()
    mock.ExpectExec("INSERT INTO flights").WillReturnResult(sqlmock.NewResult(7, 1))
    mock.ExpectExec("INSERT INTO seats").WillReturnResult(sqlmock.NewResult(1, 2))
    mock.ExpectCommit()

    f := testFlight()
    var seededFor uint64
    err := repo.CreateWithSeats(context.Background(), &f, func(flightID uint64) []model.Seat {
        seededFor = flightID
        return []model.Seat{
            {FlightID: flightID, SeatNumber: "1A", Class: model.SeatClassEconomy, Status: model.SeatAvailable},
            {FlightID: flightID, SeatNumber: "1B", Class: model.SeatClassEconomy, Status: model.SeatAvailable},
        }
    })
    require.NoError(t, err)
    assert.Equal(t, uint64(7), f.ID)
    assert.Equal(t, uint64(7), seededFor)
    assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed seat insert must take the flight row down with it.
// Otherwise a scheduled flight would advertise full availability with
// zero seats, and its unique flight number would block any retry.
func TestCreateWithSeatsRollsBackFlightOnSeatFailure(t *testing.T) {
    repo, mock := newFlightRepoMock(t)

    mock.ExpectBegin()
    mock.ExpectExec("INSERT INTO flights").WillReturnResult(sqlmock.NewResult(8, 1))
    mock.ExpectExec("INSERT INTO seats").WillReturnError(errors.New("deadlock"))
    mock.ExpectRollback()

    f := testFlight()
    err := repo.CreateWithSeats(context.Background(), &f, func(flightID uint64) []model.Seat {
        return []model.Seat{{FlightID: flightID, SeatNumber: "1A", Class: model.SeatClassEconomy, Status: model.SeatAvailable}}
    })
    require.Error(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithSeatsMapsDuplicateFlightNumber(t *testing.T) {
    repo, mock := newFlightRepoMock(t)

    mock.ExpectBegin()
    mock.ExpectExec("INSERT INTO flights").
        WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'IA204'"))
    mock.ExpectRollback()

    f := testFlight()
    err := repo.CreateWithSeats(context.Background(), &f, func(flightID uint64) []model.Seat { return nil })
    assert.ErrorIs(t, err, ErrFlightNumberExists)
    assert.NoError(t, mock.ExpectationsWereMet())
}

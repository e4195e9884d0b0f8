package handler // handler defines the HTTP layer of the booking service

import (
    "errors"
    "fmt"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/airline-seat-reservation/internal/booking"
    "github.com/iliyamo/airline-seat-reservation/internal/middleware"
    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// getUserID extracts the authenticated user's ID from the context.
func getUserID(c echo.Context) (uint64, error) {
    id, ok := middleware.CurrentUserID(c)
    if !ok {
        return 0, errors.New("invalid user_id in context")
    }
    return id, nil
}

// pathID parses a numeric path parameter; zero is rejected because no
// table uses it as a key.
func pathID(c echo.Context, name string) (uint64, error) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, fmt.Errorf("invalid %s", name)
    }
    return id, nil
}

// seatLetters returns the seat letters for one cabin row.  First and
// business cabins are laid out 2-2 (A B | C D), economy 3-3
// (A B C | D E F).
func seatLetters(class model.SeatClass) []string {
    if class == model.SeatClassEconomy {
        return []string{"A", "B", "C", "D", "E", "F"}
    }
    return []string{"A", "B", "C", "D"}
}

// windowAisle reports the window and aisle flags of a seat letter in
// the given cabin layout.
func windowAisle(class model.SeatClass, letter string) (isWindow, isAisle bool) {
    if class == model.SeatClassEconomy {
        switch letter {
        case "A", "F":
            return true, false
        case "C", "D":
            return false, true
        }
        return false, false
    }
    switch letter {
    case "A", "D":
        return true, false
    case "B", "C":
        return false, true
    }
    return false, false
}

// buildSeatMap produces the full seat inventory for one flight from
// the aircraft's cabin configuration.  Rows are numbered continuously
// front to back: first class, then business, then economy.  Every
// seat starts AVAILABLE with a surcharge derived from its position.
func buildSeatMap(flightID uint64, ac model.Aircraft) []model.Seat {
    seats := make([]model.Seat, 0, ac.TotalSeats)
    row := 1
    for _, cabin := range []struct {
        class model.SeatClass
        count uint32
    }{
        {model.SeatClassFirst, ac.FirstSeats},
        {model.SeatClassBusiness, ac.BusinessSeats},
        {model.SeatClassEconomy, ac.EconomySeats},
    } {
        letters := seatLetters(cabin.class)
        placed := uint32(0)
        for placed < cabin.count {
            for _, letter := range letters {
                if placed == cabin.count {
                    break
                }
                isWindow, isAisle := windowAisle(cabin.class, letter)
                var surcharge uint32
                if isWindow {
                    surcharge = booking.WindowSurchargeCents
                } else if isAisle {
                    surcharge = booking.AisleSurchargeCents
                }
                seats = append(seats, model.Seat{
                    FlightID:       flightID,
                    SeatNumber:     strconv.Itoa(row) + letter,
                    Class:          cabin.class,
                    Status:         model.SeatAvailable,
                    IsWindow:       isWindow,
                    IsAisle:        isAisle,
                    SurchargeCents: surcharge,
                })
                placed++
            }
            row++
        }
    }
    return seats
}

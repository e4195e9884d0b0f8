package model

import "time"

// Airport represents a physical airport referenced by routes.  Once a
// route points at an airport the record is treated as immutable; only
// inserts and lookups are supported by the repository layer.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – unique IATA-style code (2–3 upper-case letters).
//  Name      – full airport name.
//  City      – city served by the airport.
//  Country   – country of the airport.
//  Timezone  – IANA timezone name (e.g. "Europe/Istanbul").
//  CreatedAt – timestamp when the airport was created.
type Airport struct {
    ID        uint64    // airports.id
    Code      string    // airports.code
    Name      string    // airports.name
    City      string    // airports.city
    Country   string    // airports.country
    Timezone  string    // airports.timezone
    CreatedAt time.Time // airports.created_at
}

// ValidAirportCode reports whether code is a 2 or 3 letter upper-case
// ASCII identifier.  Handlers normalize input before calling this.
func ValidAirportCode(code string) bool {
    if len(code) < 2 || len(code) > 3 {
        return false
    }
    for i := 0; i < len(code); i++ {
        if code[i] < 'A' || code[i] > 'Z' {
            return false
        }
    }
    return true
}

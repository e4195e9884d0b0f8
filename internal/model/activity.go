package model

import "time"

// Audit action names recorded by the activity trail.  Booking actions
// are written by the reservation coordinator, auth actions by the
// auth handler.
const (
    ActionRegister       = "auth.register"
    ActionLogin          = "auth.login"
    ActionRefresh        = "auth.refresh"
    ActionLogout         = "auth.logout"
    ActionHoldSeat       = "reservation.hold"
    ActionConfirmSeat    = "reservation.confirm"
    ActionCancelSeat     = "reservation.cancel"
    ActionExpireHold     = "reservation.expire"
    ActionCreateFlight   = "flight.create"
    ActionFlightStatus   = "flight.status"
)

// ActivityLogEntry is one immutable row of the append-only audit
// trail.  Entries are never updated or deleted; the repository only
// supports inserts and filtered reads.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – acting user; zero for system actors such as the
//               expiry sweeper.
//  Action     – action name, one of the Action* constants.
//  EntityType – kind of the target entity ("flight", "reservation", ...).
//  EntityRef  – identifier of the target entity as a string.
//  Detail     – free-text detail about the action.
//  IPAddress  – client address when the action came over HTTP.
//  CreatedAt  – timestamp of the action.
type ActivityLogEntry struct {
    ID         uint64    // activity_logs.id
    UserID     uint64    // activity_logs.user_id
    Action     string    // activity_logs.action
    EntityType string    // activity_logs.entity_type
    EntityRef  string    // activity_logs.entity_ref
    Detail     string    // activity_logs.detail
    IPAddress  string    // activity_logs.ip_address
    CreatedAt  time.Time // activity_logs.created_at
}

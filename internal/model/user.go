package model

import "time"

// UserRole enumerates the roles a user account may carry.  Roles are
// stored as upper-case strings in the users.role column and embedded
// in the JWT "role" claim.
type UserRole string

const (
    RolePassenger UserRole = "PASSENGER"
    RoleStaff     UserRole = "STAFF"
    RoleAdmin     UserRole = "ADMIN"
)

// ParseUserRole converts a raw value into a UserRole.  The second
// return value is false for unknown inputs.
func ParseUserRole(s string) (UserRole, bool) {
    switch UserRole(s) {
    case RolePassenger, RoleStaff, RoleAdmin:
        return UserRole(s), true
    }
    return "", false
}

// User represents an application user record as stored in the
// `users` table.  Handlers define separate response types with JSON
// tags; this struct is used by the repository layer only.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  FullName     – display name of the passenger.
//  Phone        – optional contact phone number.
//  PasswordHash – bcrypt hashed password.
//  Role         – account role, see UserRole.
//  IsActive     – whether the account is active.
//  LastLogin    – time of the most recent successful login.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64     // users.id
    Email        string     // users.email
    FullName     string     // users.full_name
    Phone        *string    // users.phone (nullable)
    PasswordHash string     // users.password_hash
    Role         UserRole   // users.role
    IsActive     bool       // users.is_active
    LastLogin    *time.Time // users.last_login (nullable)
    CreatedAt    time.Time  // users.created_at
    UpdatedAt    time.Time  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}

package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  FullName     – display name shown on receipts and reports.
//  PasswordHash – bcrypt hashed password.
//  Role         – role name (admin, manager or cashier).
//  StationID    – station the user is assigned to; zero when the
//                 user (typically an admin) is not tied to a station.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	FullName     string    // users.full_name
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	StationID    uint64    // users.station_id (0 = unassigned)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role names accepted in users.role and in the JWT "role" claim.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and carries expiry and revocation
// metadata.  The plain token is never stored; only its SHA-256 hash.
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

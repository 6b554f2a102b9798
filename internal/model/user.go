package model

import "time"

// Role distinguishes the two kinds of authenticated callers.  Downstream
// logic (for example the redirect after a booking) branches on it.
type Role string

const (
	RoleAdmin Role = "admin" // the single configured administrator
	RoleGuest Role = "guest" // a self-registered or seeded guest account
)

// Guest represents a guest account.  Only the bcrypt hash of the password
// is kept; plain passwords never leave the credential service.
//
// Fields:
//  ID           – integer identifier, max(existing)+1 on registration.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – registration timestamp.
type Guest struct {
	ID           uint64    // guests.id
	Username     string    // guests.username
	PasswordHash string    // guests.password_hash
	CreatedAt    time.Time // guests.created_at
}

// Identity is what an authenticated session remembers about its owner.
type Identity struct {
	UserID   uint64 `json:"user_id"`  // guest id; zero for the admin
	Username string `json:"username"` // display name ("Aptech" for the admin)
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the identity belongs to the administrator.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

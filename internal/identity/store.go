// Package identity reads user accounts from the shared auth database.
//
// User accounts live in a different database from the application's
// primary data, with no foreign keys between the two. The application
// treats user ids as opaque references: a listing that mentions an id
// the auth database no longer knows about must degrade to "unknown
// user", never fail.
package identity

import (
	"context"
	"time"
)

// Role values for user accounts
const (
	RoleAdmin  = "admin"
	RolePlayer = "player"
)

// UserInfo is a snapshot of one account in the auth database.
// PasswordHash is only populated by GetByEmail for login verification
// and must never be serialized.
type UserInfo struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	PasswordHash string     `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Store is the read-mostly surface over the shared auth database.
// SetRole and TouchLastLogin are the only writes the application makes.
type Store interface {
	// GetByID returns the user or model.ErrUserNotFound
	GetByID(ctx context.Context, id string) (*UserInfo, error)

	// GetByIDs returns the users that exist; ids with no account are
	// silently omitted. An empty input returns an empty slice.
	GetByIDs(ctx context.Context, ids []string) ([]*UserInfo, error)

	// GetAll returns every account ordered by name
	GetAll(ctx context.Context) ([]*UserInfo, error)

	// GetByEmail returns the user with the password hash populated,
	// or model.ErrUserNotFound
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)

	// SetRole updates an account's role
	SetRole(ctx context.Context, id string, role string) error

	// TouchLastLogin records a successful login time
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// ValidRole reports whether role is a recognized account role
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RolePlayer
}

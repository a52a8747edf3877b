// Package models contains the server-side data structures persisted by the
// repositories.
package models

import "time"

// User is the stored account record. PasswordHash is the only persisted form
// of the credential; plaintext passwords never leave the registration and
// login flows.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate is the typed partial-update structure for a user record.
// Nil fields are left untouched. The enumerated set keeps the update path
// compile-time safe; in particular neither the email nor the password hash
// can be mutated through it.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Phone     *string
	IsActive  *bool
}

// Package users encapsulates user accounts: the model, the registration
// endpoint, and the store operations the authentication gate relies on.
package users

import "time"

// User represents a stored user account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"userName"`
	// HashedPassword holds the bcrypt hash. The json:"-" tag keeps it out of
	// any serialized form; plaintext is never stored at all.
	HashedPassword string    `json:"-"`
	FirstName      *string   `json:"firstName,omitempty"`
	LastName       *string   `json:"lastName,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

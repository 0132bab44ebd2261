package models

import "time"

// User represents an account entity used for authentication.
//
// The password hash must never leave the process: it is excluded from JSON
// serialization and only compared through the auth service.
type User struct {
	// ID is the MongoDB ObjectID of the user encoded as a hex string.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier, stored case-sensitively.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Payload returns the public representation of the user embedded in auth
// responses and token claims.
func (u User) Payload() UserPayload {
	return UserPayload{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// UserPayload is the public subset of a user account exposed over the API.
type UserPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

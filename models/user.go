package models

import "time"

// User is a registered account. Email is unique and compared case-sensitively.
type User struct {
	// ID is the server-assigned identifier of the user.
	ID string `json:"id"`

	// Email is the login identifier supplied at registration.
	Email string `json:"email"`

	// Password carries the plaintext password on registration and is cleared
	// before the user is written back to the client.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash persisted in the users table.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of u that is safe to send over the wire.
func (u User) Public() User {
	return User{ID: u.ID, Email: u.Email}
}

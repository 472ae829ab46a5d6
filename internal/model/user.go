package model

import "time"

// User is an admin account. Accounts are provisioned at init time and are
// read-only at runtime; there is no user management surface.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

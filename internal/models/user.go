package models

import "time"

// User is an account record. Immutable after signup: there is no
// password-change or delete flow in this application.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // don't expose hash
	CreatedAt    time.Time `json:"created_at"`
}

package models

import "time"

// Session maps an opaque client-side token to an authenticated user.
// AuthHash is derived from the user's password hash at login time; if the
// stored password ever changes the session stops resolving.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	AuthHash  string    `json:"auth_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

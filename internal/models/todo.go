package models

import "time"

// Todo is a single list entry owned by exactly one user. Every query that
// touches a todo filters by UserID, so cross-user access cannot happen at
// the SQL level.
type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

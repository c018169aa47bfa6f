package session

import (
	"context"
	"time"

	"todoapp/internal/models"
)

// Store defines how sessions are persisted and retrieved. Implementations
// hold no auth logic: they store opaque records and enforce expiry.
//
// Get returns (nil, nil) for tokens that are unknown or already expired;
// the caller treats both as anonymous. Delete is idempotent.
type Store interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Refresh(ctx context.Context, token string, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
}

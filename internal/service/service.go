package service

import (
	"context"

	"todoapp/internal/models"
	"todoapp/internal/repository"
	"todoapp/internal/session"
)

type Authorization interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// Sessions turns authenticated users into opaque cookie tokens and back.
type Sessions interface {
	Login(ctx context.Context, user *models.User) (string, error)
	Resolve(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

// Todos is the owner-scoped list API used by the handlers. Every method
// takes the owner id resolved by the session middleware.
type Todos interface {
	Create(ctx context.Context, ownerID, content string) (*models.Todo, error)
	List(ctx context.Context, ownerID string) ([]models.Todo, error)
	Get(ctx context.Context, ownerID, id string) (*models.Todo, error)
	Update(ctx context.Context, ownerID, id, content string) (*models.Todo, error)
	Toggle(ctx context.Context, ownerID, id string) (*models.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Sessions
	Todos
}

// NewService wires the repository layer and session store into concrete
// services.
func NewService(repos *repository.Repository, store session.Store) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users),
		Sessions:      NewSessionService(store, repos.Users),
		Todos:         NewTodoService(repos.Todos),
	}
}

package repository

import (
	"context"
	"database/sql"

	"todoapp/internal/models"
)

type Users interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type Todos interface {
	Create(ctx context.Context, ownerID, content string) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Todo, error)
	UpdateContent(ctx context.Context, ownerID, id, content string) (int64, error)
	ToggleDone(ctx context.Context, ownerID, id string) (int64, error)
	Delete(ctx context.Context, ownerID, id string) (int64, error)
}

type Repository struct {
	Users Users
	Todos Todos
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Todos: NewTodoRepository(db),
	}
}

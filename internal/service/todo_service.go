package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"todoapp/internal/models"
	"todoapp/internal/repository"
)

var (
	// ErrTodoNotFound covers both a missing id and an id owned by another
	// user; callers cannot tell the difference.
	ErrTodoNotFound   = errors.New("todo not found")
	ErrInvalidContent = errors.New("content must be 1-1000 characters")
)

const maxContentLen = 1000

// TodoService validates input and translates the repository's
// rows-affected counts into not-found errors.
type TodoService struct {
	todos repository.Todos
}

func NewTodoService(todos repository.Todos) *TodoService {
	return &TodoService{todos: todos}
}

func validateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < 1 || n > maxContentLen {
		return ErrInvalidContent
	}
	return nil
}

func (s *TodoService) Create(ctx context.Context, ownerID, content string) (*models.Todo, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	return s.todos.Create(ctx, ownerID, content)
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]models.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}

func (s *TodoService) Get(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	t, err := s.todos.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTodoNotFound
	}
	return t, nil
}

// Update rewrites the content and returns the updated row. Zero affected
// rows surfaces as ErrTodoNotFound rather than silent success.
func (s *TodoService) Update(ctx context.Context, ownerID, id, content string) (*models.Todo, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	n, err := s.todos.UpdateContent(ctx, ownerID, id, content)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrTodoNotFound
	}
	return s.Get(ctx, ownerID, id)
}

// Toggle flips the done flag atomically and returns the row as it now is.
func (s *TodoService) Toggle(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	n, err := s.todos.ToggleDone(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrTodoNotFound
	}
	return s.Get(ctx, ownerID, id)
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	n, err := s.todos.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTodoNotFound
	}
	return nil
}

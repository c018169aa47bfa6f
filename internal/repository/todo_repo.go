package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"todoapp/internal/models"
)

// sqliteTimeFormat is the TIMESTAMP format SQLite sorts lexicographically.
const sqliteTimeFormat = "2006-01-02 15:04:05.000"

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

var _ Todos = (*TodoRepository)(nil)

// Every statement below filters by user_id as well as todo_id, so a caller
// can never read or mutate a row it does not own. Mutations report the
// affected-row count; zero means "no such todo for this owner" and the two
// cases (absent id, someone else's id) are indistinguishable on purpose.
const (
	insertTodoSQL = `INSERT INTO todos (todo_id, user_id, content, done, created_at) VALUES (?, ?, ?, ?, ?)`
	listTodosSQL  = `SELECT todo_id, user_id, content, done, created_at FROM todos WHERE user_id = ? ORDER BY created_at ASC, todo_id ASC`
	selectTodoSQL = `SELECT todo_id, user_id, content, done, created_at FROM todos WHERE todo_id = ? AND user_id = ?`
	updateTodoSQL = `UPDATE todos SET content = ? WHERE todo_id = ? AND user_id = ?`
	toggleTodoSQL = `UPDATE todos SET done = NOT done WHERE todo_id = ? AND user_id = ?`
	deleteTodoSQL = `DELETE FROM todos WHERE todo_id = ? AND user_id = ?`
)

// Create inserts a todo for ownerID with done=false and returns the stored row.
func (r *TodoRepository) Create(ctx context.Context, ownerID, content string) (*models.Todo, error) {
	t := models.Todo{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Content:   content,
		Done:      false,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx, insertTodoSQL,
		t.ID, t.UserID, t.Content, t.Done, t.CreatedAt.Format(sqliteTimeFormat))
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return &t, nil
}

// ListByOwner returns the owner's todos in creation order. No rows is an
// empty slice, not an error.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, listTodosSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	out := make([]models.Todo, 0, 16)
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Content, &t.Done, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return out, nil
}

// GetByID fetches one owned todo. Returns (nil, nil) when the id does not
// exist or belongs to another user.
func (r *TodoRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	var t models.Todo
	err := r.db.QueryRowContext(ctx, selectTodoSQL, id, ownerID).
		Scan(&t.ID, &t.UserID, &t.Content, &t.Done, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select todo: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

// UpdateContent replaces the content of an owned todo.
func (r *TodoRepository) UpdateContent(ctx context.Context, ownerID, id, content string) (int64, error) {
	return r.exec(ctx, "update todo", updateTodoSQL, content, id, ownerID)
}

// ToggleDone flips the completion flag in a single statement, so two
// concurrent toggles of the same row serialize at the database.
func (r *TodoRepository) ToggleDone(ctx context.Context, ownerID, id string) (int64, error) {
	return r.exec(ctx, "toggle todo", toggleTodoSQL, id, ownerID)
}

// Delete removes an owned todo.
func (r *TodoRepository) Delete(ctx context.Context, ownerID, id string) (int64, error) {
	return r.exec(ctx, "delete todo", deleteTodoSQL, id, ownerID)
}

func (r *TodoRepository) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return n, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/platform/database"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Compile-time interface check.
var _ ports.TodoRepository = (*TodoRepository)(nil)

// Runner executes a named store operation. Satisfied by *database.DB.
type Runner interface {
	Do(ctx context.Context, operation string, fn func(ctx context.Context, q database.Querier) error) error
}

const todoColumns = `id, title, description, completed, created_at, updated_at`

const (
	queryGet = `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	queryExists = `SELECT EXISTS (SELECT 1 FROM todos WHERE id = $1)`

	queryInsert = `INSERT INTO todos (title, description, completed)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`

	queryUpdate = `UPDATE todos
SET title = $1, description = $2, completed = $3, updated_at = now()
WHERE id = $4
RETURNING created_at, updated_at`

	queryDelete = `DELETE FROM todos WHERE id = $1`

	queryListAll = `SELECT ` + todoColumns + ` FROM todos ORDER BY created_at DESC, id DESC`

	queryListByCompleted = `SELECT ` + todoColumns + ` FROM todos WHERE completed = $1 ORDER BY id`

	querySearchByTitle = `SELECT ` + todoColumns + ` FROM todos
WHERE strpos(lower(title), lower($1)) > 0
ORDER BY id`

	queryListIncomplete = `SELECT ` + todoColumns + ` FROM todos
WHERE completed = FALSE
ORDER BY created_at DESC, id DESC`

	queryListCompleted = `SELECT ` + todoColumns + ` FROM todos
WHERE completed = TRUE
ORDER BY updated_at DESC, id DESC`
)

// TodoRepository stores todos in the todos table.
type TodoRepository struct {
	db Runner
}

// NewTodoRepository creates a TodoRepository on top of db.
func NewTodoRepository(db Runner) *TodoRepository {
	return &TodoRepository{db: db}
}

// Get returns the todo with the given ID.
func (r *TodoRepository) Get(ctx context.Context, id int64) (*todo.Todo, error) {
	var t todo.Todo
	err := r.db.Do(ctx, "todos.get", func(ctx context.Context, q database.Querier) error {
		return scanTodo(q.QueryRowContext(ctx, queryGet, id), &t)
	})
	if err != nil {
		return nil, translate("todos.get", id, err)
	}
	return &t, nil
}

// Exists reports whether a todo with the given ID is stored.
func (r *TodoRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.Do(ctx, "todos.exists", func(ctx context.Context, q database.Querier) error {
		return q.QueryRowContext(ctx, queryExists, id).Scan(&exists)
	})
	if err != nil {
		return false, translate("todos.exists", id, err)
	}
	return exists, nil
}

// Create inserts t and returns a copy carrying the store-assigned ID and
// timestamps. t itself is left untouched.
func (r *TodoRepository) Create(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	created := *t
	err := r.db.Do(ctx, "todos.create", func(ctx context.Context, q database.Querier) error {
		return q.QueryRowContext(ctx, queryInsert, t.Title, t.Description, t.Completed).
			Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	})
	if err != nil {
		return nil, translate("todos.create", 0, err)
	}
	return &created, nil
}

// Update overwrites the mutable fields of the row t.ID and returns a copy with
// the refreshed UpdatedAt.
func (r *TodoRepository) Update(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	updated := *t
	err := r.db.Do(ctx, "todos.update", func(ctx context.Context, q database.Querier) error {
		return q.QueryRowContext(ctx, queryUpdate, t.Title, t.Description, t.Completed, t.ID).
			Scan(&updated.CreatedAt, &updated.UpdatedAt)
	})
	if err != nil {
		return nil, translate("todos.update", t.ID, err)
	}
	return &updated, nil
}

// Delete removes the todo with the given ID.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.Do(ctx, "todos.delete", func(ctx context.Context, q database.Querier) error {
		res, err := q.ExecContext(ctx, queryDelete, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return translate("todos.delete", id, err)
	}
	return nil
}

// ListAll returns every todo, newest created first.
func (r *TodoRepository) ListAll(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, "todos.list_all", queryListAll)
}

// ListByCompleted returns todos with the given completion flag in ID order.
func (r *TodoRepository) ListByCompleted(ctx context.Context, completed bool) ([]todo.Todo, error) {
	return r.list(ctx, "todos.list_by_completed", queryListByCompleted, completed)
}

// SearchByTitle returns todos whose title contains title, ignoring case, in
// ID order. An empty title matches every row.
func (r *TodoRepository) SearchByTitle(ctx context.Context, title string) ([]todo.Todo, error) {
	return r.list(ctx, "todos.search_by_title", querySearchByTitle, title)
}

// ListIncomplete returns open todos, newest created first.
func (r *TodoRepository) ListIncomplete(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, "todos.list_incomplete", queryListIncomplete)
}

// ListCompleted returns finished todos, most recently updated first.
func (r *TodoRepository) ListCompleted(ctx context.Context) ([]todo.Todo, error) {
	return r.list(ctx, "todos.list_completed", queryListCompleted)
}

// list runs a multi-row query. The result is never nil so that an empty
// result encodes as [] rather than null.
func (r *TodoRepository) list(ctx context.Context, operation, query string, args ...any) ([]todo.Todo, error) {
	todos := []todo.Todo{}
	err := r.db.Do(ctx, operation, func(ctx context.Context, q database.Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var t todo.Todo
			if err := scanTodo(rows, &t); err != nil {
				return err
			}
			todos = append(todos, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, translate(operation, 0, err)
	}
	return todos, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner, t *todo.Todo) error {
	return s.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
}

// translate maps store errors onto domain errors. id is zero for operations
// not addressed to a single row.
func translate(operation string, id int64, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	case errors.Is(err, database.ErrCircuitOpen):
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", operation, err)
	}
}

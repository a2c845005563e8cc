package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoService defines the service port for to-do operations.
// Implemented by the application layer; called by inbound adapters (handlers).
// Every method performs a single store round-trip except UpdateTodo,
// ToggleTodo and DeleteTodo, which read before they write.
type TodoService interface {
	// ListTodos returns every todo, newest created first.
	ListTodos(ctx context.Context) ([]todo.Todo, error)

	// GetTodo returns a single todo by ID.
	// Returns domain.ErrNotFound if the todo does not exist.
	GetTodo(ctx context.Context, id int64) (*todo.Todo, error)

	// CreateTodo persists a new todo and returns it with the store-assigned
	// ID and timestamps.
	// Returns domain.ErrValidation if the todo fails validation.
	CreateTodo(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// UpdateTodo replaces the title, description and completion flag of an
	// existing todo and returns the updated entity.
	// Returns domain.ErrNotFound if the todo does not exist.
	// Returns domain.ErrValidation if the todo fails validation.
	UpdateTodo(ctx context.Context, id int64, t *todo.Todo) (*todo.Todo, error)

	// ToggleTodo flips the completion flag of an existing todo.
	// Returns domain.ErrNotFound if the todo does not exist.
	ToggleTodo(ctx context.Context, id int64) (*todo.Todo, error)

	// DeleteTodo removes a todo permanently.
	// Returns domain.ErrNotFound if the todo does not exist.
	DeleteTodo(ctx context.Context, id int64) error

	// ListTodosByStatus returns todos whose completion flag equals completed.
	ListTodosByStatus(ctx context.Context, completed bool) ([]todo.Todo, error)

	// SearchTodos returns todos whose title contains title, ignoring case.
	SearchTodos(ctx context.Context, title string) ([]todo.Todo, error)

	// ListIncompleteTodos returns open todos, newest created first.
	ListIncompleteTodos(ctx context.Context) ([]todo.Todo, error)

	// ListCompletedTodos returns finished todos, most recently updated first.
	ListCompletedTodos(ctx context.Context) ([]todo.Todo, error)
}

package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoRepository defines the persistence port for the todos table.
// Implemented by the PostgreSQL adapter; called by the application layer.
// Each method is exactly one store round-trip.
type TodoRepository interface {
	// Get returns the todo with the given ID.
	// Returns domain.ErrNotFound if no row matches.
	Get(ctx context.Context, id int64) (*todo.Todo, error)

	// Exists reports whether a todo with the given ID is stored.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts a todo. The store assigns ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// Update writes Title, Description and Completed for t.ID and refreshes
	// UpdatedAt. Returns domain.ErrNotFound if no row matches.
	Update(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// Delete removes the todo with the given ID.
	// Returns domain.ErrNotFound if no row matches.
	Delete(ctx context.Context, id int64) error

	// ListAll returns every todo ordered by CreatedAt descending.
	ListAll(ctx context.Context) ([]todo.Todo, error)

	// ListByCompleted returns todos with the given completion flag.
	ListByCompleted(ctx context.Context, completed bool) ([]todo.Todo, error)

	// SearchByTitle returns todos whose title contains the given text,
	// compared case-insensitively.
	SearchByTitle(ctx context.Context, title string) ([]todo.Todo, error)

	// ListIncomplete returns open todos ordered by CreatedAt descending.
	ListIncomplete(ctx context.Context) ([]todo.Todo, error)

	// ListCompleted returns finished todos ordered by UpdatedAt descending.
	ListCompleted(ctx context.Context) ([]todo.Todo, error)
}

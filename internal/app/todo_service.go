// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService on top of the TodoRepository port.
// Each method is a single repository call, except the read-modify-write
// operations (update, toggle, delete) which read first. No transaction spans
// the read and the write, so concurrent writers to one ID resolve as last
// write wins.
type TodoService struct {
	repo   ports.TodoRepository
	logger *slog.Logger
}

// NewTodoService creates a TodoService. A nil logger discards output.
func NewTodoService(repo ports.TodoRepository, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TodoService{
		repo:   repo,
		logger: logger,
	}
}

// ListTodos returns every todo, newest created first.
func (s *TodoService) ListTodos(ctx context.Context) ([]todo.Todo, error) {
	return s.list(ctx, "ListTodos", s.repo.ListAll)
}

// GetTodo returns a single todo by ID.
func (s *TodoService) GetTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	s.logger.DebugContext(ctx, "fetching todo", slog.Int64("id", id))

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logFailure(ctx, "GetTodo", err, slog.Int64("id", id))
		return nil, err
	}
	return t, nil
}

// CreateTodo validates and persists a new todo.
func (s *TodoService) CreateTodo(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	if err := validate(t); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "creating todo", slog.String("title", t.Title))

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		s.logFailure(ctx, "CreateTodo", err)
		return nil, err
	}
	return created, nil
}

// UpdateTodo reads the stored todo, overwrites its title, description and
// completion flag with the given values and persists the result.
func (s *TodoService) UpdateTodo(ctx context.Context, id int64, t *todo.Todo) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "updating todo", slog.Int64("id", id))

	if err := validate(t); err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logFailure(ctx, "UpdateTodo", err, slog.Int64("id", id))
		return nil, err
	}

	current.Title = t.Title
	current.Description = t.Description
	current.Completed = t.Completed

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		s.logFailure(ctx, "UpdateTodo", err, slog.Int64("id", id))
		return nil, err
	}
	return updated, nil
}

// ToggleTodo reads the stored todo, flips its completion flag and persists it.
func (s *TodoService) ToggleTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "toggling todo", slog.Int64("id", id))

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logFailure(ctx, "ToggleTodo", err, slog.Int64("id", id))
		return nil, err
	}

	current.ToggleCompleted()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		s.logFailure(ctx, "ToggleTodo", err, slog.Int64("id", id))
		return nil, err
	}
	return updated, nil
}

// DeleteTodo removes a todo after confirming it exists.
func (s *TodoService) DeleteTodo(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "deleting todo", slog.Int64("id", id))

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		s.logFailure(ctx, "DeleteTodo", err, slog.Int64("id", id))
		return err
	}
	if !exists {
		return fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logFailure(ctx, "DeleteTodo", err, slog.Int64("id", id))
		return err
	}
	return nil
}

// ListTodosByStatus returns todos whose completion flag equals completed.
func (s *TodoService) ListTodosByStatus(ctx context.Context, completed bool) ([]todo.Todo, error) {
	return s.list(ctx, "ListTodosByStatus", func(ctx context.Context) ([]todo.Todo, error) {
		return s.repo.ListByCompleted(ctx, completed)
	})
}

// SearchTodos returns todos whose title contains title, ignoring case.
func (s *TodoService) SearchTodos(ctx context.Context, title string) ([]todo.Todo, error) {
	return s.list(ctx, "SearchTodos", func(ctx context.Context) ([]todo.Todo, error) {
		return s.repo.SearchByTitle(ctx, title)
	})
}

// ListIncompleteTodos returns open todos, newest created first.
func (s *TodoService) ListIncompleteTodos(ctx context.Context) ([]todo.Todo, error) {
	return s.list(ctx, "ListIncompleteTodos", s.repo.ListIncomplete)
}

// ListCompletedTodos returns finished todos, most recently updated first.
func (s *TodoService) ListCompletedTodos(ctx context.Context) ([]todo.Todo, error) {
	return s.list(ctx, "ListCompletedTodos", s.repo.ListCompleted)
}

// validate rejects a nil todo before applying the entity rules.
func validate(t *todo.Todo) error {
	if t == nil {
		return &domain.ValidationError{Fields: map[string]string{"todo": domain.MsgRequired}}
	}
	return t.Validate()
}

func (s *TodoService) list(
	ctx context.Context,
	operation string,
	fetch func(context.Context) ([]todo.Todo, error),
) ([]todo.Todo, error) {
	s.logger.DebugContext(ctx, "listing todos", slog.String("operation", operation))

	todos, err := fetch(ctx)
	if err != nil {
		s.logFailure(ctx, operation, err)
		return nil, err
	}
	return todos, nil
}

// logFailure logs a repository failure with the operation name, any entity
// identifiers and the full error chain. Not-found is an expected outcome and
// is logged at debug level.
func (s *TodoService) logFailure(ctx context.Context, operation string, err error, attrs ...slog.Attr) {
	level := slog.LevelError
	msg := "todo operation failed"
	if errors.Is(err, domain.ErrNotFound) {
		level = slog.LevelDebug
		msg = "todo not found"
	}

	all := make([]slog.Attr, 0, len(attrs)+2)
	all = append(all, slog.String("operation", operation))
	all = append(all, attrs...)
	all = append(all, slog.Any("error", err))
	s.logger.LogAttrs(ctx, level, msg, all...)
}

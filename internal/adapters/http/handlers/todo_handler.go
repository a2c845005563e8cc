package handlers

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// TodoHandler handles HTTP requests for todo CRUD, filtering and search.
type TodoHandler struct {
	service ports.TodoService
}

// NewTodoHandler creates a new TodoHandler with the given service port.
func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// ListTodos handles GET /api/v1/todos.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.service.ListTodos)
}

// CreateTodo handles POST /api/v1/todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req dto.TodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.service.CreateTodo(r.Context(), req.ToTodo())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ToTodoResponse(created))
}

// GetTodo handles GET /api/v1/todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	t, err := h.service.GetTodo(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTodoResponse(t))
}

// UpdateTodo handles PUT /api/v1/todos/{id}. The body replaces title,
// description and completed.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.TodoRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateTodo(r.Context(), id, req.ToTodo())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTodoResponse(updated))
}

// ToggleTodo handles PATCH /api/v1/todos/{id}/toggle.
func (h *TodoHandler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	toggled, err := h.service.ToggleTodo(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTodoResponse(toggled))
}

// DeleteTodo handles DELETE /api/v1/todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.service.DeleteTodo(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTodosByStatus handles GET /api/v1/todos/status/{completed}.
func (h *TodoHandler) ListTodosByStatus(w http.ResponseWriter, r *http.Request) {
	completed, err := parseBool(r, "completed")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	h.writeList(w, r, func(ctx context.Context) ([]todo.Todo, error) {
		return h.service.ListTodosByStatus(ctx, completed)
	})
}

// SearchTodos handles GET /api/v1/todos/search?title=.
func (h *TodoHandler) SearchTodos(w http.ResponseWriter, r *http.Request) {
	title, err := requiredQuery(r, "title")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	h.writeList(w, r, func(ctx context.Context) ([]todo.Todo, error) {
		return h.service.SearchTodos(ctx, title)
	})
}

// ListIncompleteTodos handles GET /api/v1/todos/incomplete.
func (h *TodoHandler) ListIncompleteTodos(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.service.ListIncompleteTodos)
}

// ListCompletedTodos handles GET /api/v1/todos/completed.
func (h *TodoHandler) ListCompletedTodos(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.service.ListCompletedTodos)
}

func (h *TodoHandler) writeList(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(context.Context) ([]todo.Todo, error),
) {
	todos, err := fetch(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToTodoListResponse(todos))
}

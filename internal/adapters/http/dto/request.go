package dto

import (
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoRequest is the JSON body for creating and for replacing a todo.
// An omitted description is stored as empty and an omitted completed flag
// as false, for both create and update.
type TodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Validate applies the todo presence and length rules to the request body.
// Returns a *domain.ValidationError if any checks fail.
func (r *TodoRequest) Validate() error {
	return r.ToTodo().Validate()
}

// ToTodo converts the request to a domain Todo without store-assigned fields.
func (r *TodoRequest) ToTodo() *todo.Todo {
	return &todo.Todo{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

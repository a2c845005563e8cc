// Package todo defines the to-do record, the single entity managed by the
// service, together with its validation rules.
package todo

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jsamuelsen11/todo-service/internal/domain"
)

// Field limits, counted in characters.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 500
)

// Todo is a single task. ID, CreatedAt and UpdatedAt are assigned by the
// store; callers only set Title, Description and Completed.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the presence and length rules for a Todo.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass.
func (t *Todo) Validate() error {
	fields := make(map[string]string)

	switch {
	case strings.TrimSpace(t.Title) == "":
		fields["title"] = domain.MsgRequired
	case utf8.RuneCountInString(t.Title) > MaxTitleLength:
		fields["title"] = domain.MsgTooLong(MaxTitleLength)
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		fields["description"] = domain.MsgTooLong(MaxDescriptionLength)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToggleCompleted flips the completion flag.
func (t *Todo) ToggleCompleted() {
	t.Completed = !t.Completed
}

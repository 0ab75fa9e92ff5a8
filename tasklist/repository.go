// Package tasklist keeps a client-side view of a user's tasks consistent
// with the task service, applying toggles and deletes optimistically and
// rolling them back when the service rejects them.
package tasklist

import (
	"context"
	"errors"

	"github.com/example/taskify/domain/todo"
)

// Repository is the owner-scoped task store the controller mirrors.
type Repository interface {
	List(ctx context.Context) ([]todo.Todo, error)
	Create(ctx context.Context, draft todo.Draft) (todo.Todo, error)
	Update(ctx context.Context, id string, patch todo.Patch) (todo.Todo, error)
	Delete(ctx context.Context, id string) error
}

var (
	// ErrUnauthorized means the session is missing or no longer valid.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation means the service rejected the input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means no task with the id is owned by the caller.
	ErrNotFound = errors.New("task not found")
	// ErrInternal means the service failed unexpectedly.
	ErrInternal = errors.New("internal server error")
	// ErrNetwork means the request never produced a response.
	ErrNetwork = errors.New("network error")
)

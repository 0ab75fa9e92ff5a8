package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domain "github.com/example/taskify/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TodoPort is the owner-scoped todo contract other modules depend on.
type TodoPort interface {
	List(ctx context.Context, ownerID string) ([]domain.Todo, error)
	Create(ctx context.Context, ownerID string, draft domain.Draft) (*domain.Todo, error)
	Update(ctx context.Context, ownerID, id string, patch domain.Patch) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// TodoAdapter implements TodoPort over the todo module's service container.
type TodoAdapter struct {
	container mono.ServiceContainer
}

var _ TodoPort = (*TodoAdapter)(nil)

// NewTodoAdapter creates a new TodoAdapter.
func NewTodoAdapter(container mono.ServiceContainer) *TodoAdapter {
	if container == nil {
		panic("todo adapter requires non-nil ServiceContainer")
	}
	return &TodoAdapter{container: container}
}

// List returns the owner's todos via the list-todos service.
func (a *TodoAdapter) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	req := ListTodosRequest{OwnerID: ownerID}
	var resp ListTodosResponse
	if err := call(ctx, a.container, "list-todos", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Todos == nil {
		resp.Todos = make([]domain.Todo, 0)
	}
	return resp.Todos, nil
}

// Create creates a todo via the create-todo service.
func (a *TodoAdapter) Create(ctx context.Context, ownerID string, draft domain.Draft) (*domain.Todo, error) {
	req := CreateTodoRequest{OwnerID: ownerID, Draft: draft}
	var resp TodoResponse
	if err := call(ctx, a.container, "create-todo", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Todo, nil
}

// Update changes a todo via the update-todo service.
func (a *TodoAdapter) Update(ctx context.Context, ownerID, id string, patch domain.Patch) (*domain.Todo, error) {
	req := UpdateTodoRequest{OwnerID: ownerID, TodoID: id, Patch: patch}
	var resp TodoResponse
	if err := call(ctx, a.container, "update-todo", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Todo, nil
}

// Delete removes a todo via the delete-todo service.
func (a *TodoAdapter) Delete(ctx context.Context, ownerID, id string) error {
	req := DeleteTodoRequest{OwnerID: ownerID, TodoID: id}
	var resp DeleteTodoResponse
	return call(ctx, a.container, "delete-todo", &req, &resp)
}

// call sends req to service and decodes the reply into resp. Remote
// failures are mapped back to this package's sentinels.
func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, remoteError(err))
	}
	return nil
}

// Order matters: specific validation errors before their parent.
var knownErrors = []error{
	domain.ErrEmptyTitle,
	domain.ErrInvalidDate,
	domain.ErrValidation,
	domain.ErrNotFound,
	domain.ErrUnauthorized,
}

// remoteError recovers the domain sentinel behind an error that crossed
// the request-reply boundary as plain text.
func remoteError(err error) error {
	msg := err.Error()
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
		if strings.Contains(msg, known.Error()) {
			return known
		}
	}
	return err
}

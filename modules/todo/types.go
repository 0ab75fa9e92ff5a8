package todo

import (
	domain "github.com/example/taskify/domain/todo"
)

// ListTodosRequest asks for every todo of an owner.
type ListTodosRequest struct {
	OwnerID string `json:"owner_id"`
}

// ListTodosResponse carries an owner's todos, newest first.
type ListTodosResponse struct {
	Todos []domain.Todo `json:"todos"`
}

// CreateTodoRequest creates a todo for an owner.
type CreateTodoRequest struct {
	OwnerID string       `json:"owner_id"`
	Draft   domain.Draft `json:"draft"`
}

// UpdateTodoRequest changes the present fields of an owned todo.
type UpdateTodoRequest struct {
	OwnerID string       `json:"owner_id"`
	TodoID  string       `json:"todo_id"`
	Patch   domain.Patch `json:"patch"`
}

// DeleteTodoRequest removes an owned todo.
type DeleteTodoRequest struct {
	OwnerID string `json:"owner_id"`
	TodoID  string `json:"todo_id"`
}

// DeleteTodoResponse confirms a deletion.
type DeleteTodoResponse struct {
	Deleted bool `json:"deleted"`
}

// TodoResponse wraps a single todo.
type TodoResponse struct {
	Todo domain.Todo `json:"todo"`
}

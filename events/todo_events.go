package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TodoCreatedEvent is emitted when a todo is created.
type TodoCreatedEvent struct {
	TodoID    string    `json:"todo_id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoCreatedV1 is the typed event definition for todo creation.
// Subject: events.todo.v1.todo-created
var TodoCreatedV1 = helper.EventDefinition[TodoCreatedEvent](
	"todo", "TodoCreated", "v1",
)

// TodoCompletedEvent is emitted when a todo transitions to completed.
type TodoCompletedEvent struct {
	TodoID      string    `json:"todo_id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completed_at"`
}

// TodoCompletedV1 is the typed event definition for todo completion.
// Subject: events.todo.v1.todo-completed
var TodoCompletedV1 = helper.EventDefinition[TodoCompletedEvent](
	"todo", "TodoCompleted", "v1",
)

// TodoReopenedEvent is emitted when a completed todo is marked pending again.
type TodoReopenedEvent struct {
	TodoID     string    `json:"todo_id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	ReopenedAt time.Time `json:"reopened_at"`
}

// TodoReopenedV1 is the typed event definition for reopening a todo.
// Subject: events.todo.v1.todo-reopened
var TodoReopenedV1 = helper.EventDefinition[TodoReopenedEvent](
	"todo", "TodoReopened", "v1",
)

// TodoUpdatedEvent is emitted when editable fields of a todo change.
type TodoUpdatedEvent struct {
	TodoID    string    `json:"todo_id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Fields    []string  `json:"fields"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TodoUpdatedV1 is the typed event definition for todo edits.
// Subject: events.todo.v1.todo-updated
var TodoUpdatedV1 = helper.EventDefinition[TodoUpdatedEvent](
	"todo", "TodoUpdated", "v1",
)

// TodoDeletedEvent is emitted when a todo is deleted.
type TodoDeletedEvent struct {
	TodoID    string    `json:"todo_id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	DeletedAt time.Time `json:"deleted_at"`
}

// TodoDeletedV1 is the typed event definition for todo deletion.
// Subject: events.todo.v1.todo-deleted
var TodoDeletedV1 = helper.EventDefinition[TodoDeletedEvent](
	"todo", "TodoDeleted", "v1",
)

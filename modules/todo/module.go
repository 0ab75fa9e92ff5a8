package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/taskify/config"
	"github.com/example/taskify/database"
	domain "github.com/example/taskify/domain/todo"
	"github.com/example/taskify/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// TodoModule owns todo storage and exposes it as request-reply services.
type TodoModule struct {
	cfg      config.Todo
	db       *gorm.DB
	service  *Service
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*TodoModule)(nil)
var _ mono.ServiceProviderModule = (*TodoModule)(nil)
var _ mono.EventEmitterModule = (*TodoModule)(nil)
var _ mono.HealthCheckableModule = (*TodoModule)(nil)

// NewModule creates a new TodoModule.
func NewModule(cfg config.Todo) *TodoModule {
	return &TodoModule{cfg: cfg}
}

// Name returns the module name.
func (m *TodoModule) Name() string {
	return "todo"
}

// SetEventBus receives the application event bus.
func (m *TodoModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents lists the events this module publishes.
func (m *TodoModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TodoCreatedV1.ToBase(),
		events.TodoCompletedV1.ToBase(),
		events.TodoReopenedV1.ToBase(),
		events.TodoUpdatedV1.ToBase(),
		events.TodoDeletedV1.ToBase(),
	}
}

// Start opens the todo database and wires the service.
func (m *TodoModule) Start(_ context.Context) error {
	db, err := database.Open(m.cfg.DBPath, &domain.Todo{})
	if err != nil {
		return err
	}
	m.db = db

	if m.eventBus == nil {
		log.Println("[todo] Warning: eventBus not set, events will not be published")
	}
	m.service = NewService(NewRepository(db), m.eventBus)

	log.Printf("[todo] Module started (database: %s)", m.cfg.DBPath)
	return nil
}

// Stop closes the database.
func (m *TodoModule) Stop(_ context.Context) error {
	database.Close(m.db)
	log.Println("[todo] Module stopped")
	return nil
}

// Health pings the todo database.
func (m *TodoModule) Health(ctx context.Context) mono.HealthStatus {
	return database.Health(ctx, m.db, m.cfg.DBPath)
}

// RegisterServices registers request-reply services in the service container.
func (m *TodoModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-todos", json.Unmarshal, json.Marshal, m.listTodos,
	); err != nil {
		return fmt.Errorf("failed to register list-todos service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create-todo", json.Unmarshal, json.Marshal, m.createTodo,
	); err != nil {
		return fmt.Errorf("failed to register create-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-todo", json.Unmarshal, json.Marshal, m.updateTodo,
	); err != nil {
		return fmt.Errorf("failed to register update-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-todo", json.Unmarshal, json.Marshal, m.deleteTodo,
	); err != nil {
		return fmt.Errorf("failed to register delete-todo service: %w", err)
	}

	log.Printf("[todo] Registered services: list-todos, create-todo, update-todo, delete-todo")
	return nil
}

func (m *TodoModule) listTodos(ctx context.Context, req ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	todos, err := m.service.List(ctx, req.OwnerID)
	if err != nil {
		return ListTodosResponse{}, err
	}
	return ListTodosResponse{Todos: todos}, nil
}

func (m *TodoModule) createTodo(ctx context.Context, req CreateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	t, err := m.service.Create(ctx, req.OwnerID, req.Draft)
	if err != nil {
		return TodoResponse{}, err
	}
	return TodoResponse{Todo: *t}, nil
}

func (m *TodoModule) updateTodo(ctx context.Context, req UpdateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	t, err := m.service.Update(ctx, req.OwnerID, req.TodoID, req.Patch)
	if err != nil {
		return TodoResponse{}, err
	}
	return TodoResponse{Todo: *t}, nil
}

func (m *TodoModule) deleteTodo(ctx context.Context, req DeleteTodoRequest, _ *mono.Msg) (DeleteTodoResponse, error) {
	if err := m.service.Delete(ctx, req.OwnerID, req.TodoID); err != nil {
		return DeleteTodoResponse{Deleted: false}, err
	}
	return DeleteTodoResponse{Deleted: true}, nil
}

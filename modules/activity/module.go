package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/example/taskify/config"
	"github.com/example/taskify/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityModule turns todo events into per-user activity feeds.
type ActivityModule struct {
	feed *Feed
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)
var _ ActivityPort = (*ActivityModule)(nil)

// NewModule creates a new ActivityModule.
func NewModule(cfg config.Activity) *ActivityModule {
	return &ActivityModule{feed: NewFeed(cfg.FeedSize)}
}

// Name returns the module name.
func (m *ActivityModule) Name() string {
	return "activity"
}

// RegisterEventConsumers subscribes the feed to every todo lifecycle event.
func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoCreatedV1, m.handleTodoCreated, m); err != nil {
		return fmt.Errorf("failed to register TodoCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoCompletedV1, m.handleTodoCompleted, m); err != nil {
		return fmt.Errorf("failed to register TodoCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoReopenedV1, m.handleTodoReopened, m); err != nil {
		return fmt.Errorf("failed to register TodoReopened consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoUpdatedV1, m.handleTodoUpdated, m); err != nil {
		return fmt.Errorf("failed to register TodoUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoDeletedV1, m.handleTodoDeleted, m); err != nil {
		return fmt.Errorf("failed to register TodoDeleted consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: TodoCreated, TodoCompleted, TodoReopened, TodoUpdated, TodoDeleted")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent-activity", json.Unmarshal, json.Marshal, m.recentActivity,
	); err != nil {
		return fmt.Errorf("failed to register recent-activity service: %w", err)
	}
	log.Printf("[activity] Registered services: recent-activity")
	return nil
}

func (m *ActivityModule) recentActivity(ctx context.Context, req RecentActivityRequest, _ *mono.Msg) (RecentActivityResponse, error) {
	entries, err := m.Recent(ctx, req.OwnerID, req.Limit)
	if err != nil {
		return RecentActivityResponse{}, err
	}
	return RecentActivityResponse{Entries: entries}, nil
}

// Recent returns the owner's newest entries.
func (m *ActivityModule) Recent(_ context.Context, ownerID string, limit int) ([]Entry, error) {
	if ownerID == "" {
		return nil, errors.New("owner id is required")
	}
	return m.feed.Recent(ownerID, limit), nil
}

func (m *ActivityModule) handleTodoCreated(_ context.Context, event events.TodoCreatedEvent, _ *mono.Msg) error {
	m.feed.Record(event.OwnerID, Entry{
		Type:    TypeCreated,
		TodoID:  event.TodoID,
		Title:   event.Title,
		Message: fmt.Sprintf("Created task %q", event.Title),
		At:      event.CreatedAt,
	})
	return nil
}

func (m *ActivityModule) handleTodoCompleted(_ context.Context, event events.TodoCompletedEvent, _ *mono.Msg) error {
	m.feed.Record(event.OwnerID, Entry{
		Type:    TypeCompleted,
		TodoID:  event.TodoID,
		Title:   event.Title,
		Message: fmt.Sprintf("Completed task %q", event.Title),
		At:      event.CompletedAt,
	})
	return nil
}

func (m *ActivityModule) handleTodoReopened(_ context.Context, event events.TodoReopenedEvent, _ *mono.Msg) error {
	m.feed.Record(event.OwnerID, Entry{
		Type:    TypeReopened,
		TodoID:  event.TodoID,
		Title:   event.Title,
		Message: fmt.Sprintf("Marked task %q as pending", event.Title),
		At:      event.ReopenedAt,
	})
	return nil
}

func (m *ActivityModule) handleTodoUpdated(_ context.Context, event events.TodoUpdatedEvent, _ *mono.Msg) error {
	m.feed.Record(event.OwnerID, Entry{
		Type:    TypeUpdated,
		TodoID:  event.TodoID,
		Title:   event.Title,
		Message: fmt.Sprintf("Updated %s of task %q", strings.Join(event.Fields, ", "), event.Title),
		At:      event.UpdatedAt,
	})
	return nil
}

func (m *ActivityModule) handleTodoDeleted(_ context.Context, event events.TodoDeletedEvent, _ *mono.Msg) error {
	m.feed.Record(event.OwnerID, Entry{
		Type:    TypeDeleted,
		TodoID:  event.TodoID,
		Title:   event.Title,
		Message: fmt.Sprintf("Deleted task %q", event.Title),
		At:      event.DeletedAt,
	})
	return nil
}

// Start starts the module.
func (m *ActivityModule) Start(_ context.Context) error {
	log.Println("[activity] Module started - listening for todo events")
	return nil
}

// Stop stops the module.
func (m *ActivityModule) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}

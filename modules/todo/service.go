package todo

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	domain "github.com/example/taskify/domain/todo"
	"github.com/example/taskify/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// Service holds the todo business rules: ownership, validation and the
// derivation of completedAt.
type Service struct {
	repo     *Repository
	eventBus mono.EventBus
	now      func() time.Time
}

var _ TodoPort = (*Service)(nil)

// NewService creates a Service. A nil bus disables event publishing.
func NewService(repo *Repository, bus mono.EventBus) *Service {
	return &Service{
		repo:     repo,
		eventBus: bus,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List returns the owner's todos, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Create validates the draft and stores a new pending todo.
func (s *Service) Create(ctx context.Context, ownerID string, draft domain.Draft) (*domain.Todo, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	draft, err := draft.Normalize()
	if err != nil {
		return nil, err
	}

	t := &domain.Todo{
		ID:                     uuid.New().String(),
		OwnerID:                ownerID,
		Title:                  draft.Title,
		Description:            draft.Description,
		Priority:               draft.Priority,
		ExpectedCompletionDate: draft.ExpectedCompletionDate,
		CreatedAt:              s.now(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save todo: %w", err)
	}

	s.publish("TodoCreated", t.ID, func() error {
		return events.TodoCreatedV1.Publish(s.eventBus, events.TodoCreatedEvent{
			TodoID:    t.ID,
			OwnerID:   t.OwnerID,
			Title:     t.Title,
			Priority:  int(t.Priority),
			CreatedAt: t.CreatedAt,
		}, nil)
	})

	return t, nil
}

// Update applies the present fields of patch to an owned todo.
func (s *Service) Update(ctx context.Context, ownerID, id string, patch domain.Patch) (*domain.Todo, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	wasCompleted := t.Completed
	now := s.now()
	changed := t.Apply(patch, now)
	if len(changed) == 0 {
		return t, nil
	}

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.publishChanges(t, wasCompleted, changed, now)
	return t, nil
}

// Delete removes an owned todo.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}

	t, err := s.repo.FindOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}

	s.publish("TodoDeleted", id, func() error {
		return events.TodoDeletedV1.Publish(s.eventBus, events.TodoDeletedEvent{
			TodoID:    id,
			OwnerID:   ownerID,
			Title:     t.Title,
			DeletedAt: s.now(),
		}, nil)
	})
	return nil
}

func (s *Service) publishChanges(t *domain.Todo, wasCompleted bool, changed []string, now time.Time) {
	if t.Completed != wasCompleted {
		if t.Completed {
			s.publish("TodoCompleted", t.ID, func() error {
				return events.TodoCompletedV1.Publish(s.eventBus, events.TodoCompletedEvent{
					TodoID:      t.ID,
					OwnerID:     t.OwnerID,
					Title:       t.Title,
					CompletedAt: now,
				}, nil)
			})
		} else {
			s.publish("TodoReopened", t.ID, func() error {
				return events.TodoReopenedV1.Publish(s.eventBus, events.TodoReopenedEvent{
					TodoID:     t.ID,
					OwnerID:    t.OwnerID,
					Title:      t.Title,
					ReopenedAt: now,
				}, nil)
			})
		}
	}

	edited := slices.DeleteFunc(slices.Clone(changed), func(f string) bool { return f == "completed" })
	if len(edited) == 0 {
		return
	}
	s.publish("TodoUpdated", t.ID, func() error {
		return events.TodoUpdatedV1.Publish(s.eventBus, events.TodoUpdatedEvent{
			TodoID:    t.ID,
			OwnerID:   t.OwnerID,
			Title:     t.Title,
			Fields:    edited,
			UpdatedAt: now,
		}, nil)
	})
}

// publish is best-effort: failures are logged and never fail the operation.
func (s *Service) publish(name, todoID string, fn func() error) {
	if s.eventBus == nil {
		return
	}
	if err := fn(); err != nil {
		log.Printf("[todo] Warning: failed to publish %s event for todo %s: %v", name, todoID, err)
	}
}

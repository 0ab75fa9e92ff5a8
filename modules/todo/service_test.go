package todo

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/example/taskify/domain/todo"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	clock := time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}

func TestService_CreateNormalizes(t *testing.T) {
	svc := setupTestService(t)

	td, err := svc.Create(context.Background(), "alice", domain.Draft{
		Title:       "  Write report  ",
		Description: " quarterly ",
		Priority:    domain.Priority(9),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if td.ID == "" || td.OwnerID != "alice" {
		t.Errorf("Create() = %+v, want id and owner", td)
	}
	if td.Title != "Write report" || td.Description != "quarterly" {
		t.Errorf("Create() title/description = %q/%q, want trimmed", td.Title, td.Description)
	}
	if td.Priority != domain.PriorityLow {
		t.Errorf("Create() priority = %v, want Low", td.Priority)
	}
	if td.Completed || td.CompletedAt != nil {
		t.Errorf("Create() returned a completed todo: %+v", td)
	}
}

func TestService_CreateRejects(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "alice", domain.Draft{Title: "   "}); !errors.Is(err, domain.ErrEmptyTitle) {
		t.Errorf("Create(blank title) error = %v, want ErrEmptyTitle", err)
	}
	if _, err := svc.Create(ctx, "", domain.Draft{Title: "x"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Create(no owner) error = %v, want ErrUnauthorized", err)
	}
}

func TestService_UpdateDerivesCompletedAt(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	td, err := svc.Create(ctx, "alice", domain.Draft{Title: "Ship it"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	done := true
	updated, err := svc.Update(ctx, "alice", td.ID, domain.Patch{Completed: &done})
	if err != nil {
		t.Fatalf("Update(completed) error = %v", err)
	}
	if !updated.Completed || updated.CompletedAt == nil {
		t.Fatalf("Update(completed) = %+v, want completedAt set", updated)
	}

	pending := false
	updated, err = svc.Update(ctx, "alice", td.ID, domain.Patch{Completed: &pending})
	if err != nil {
		t.Fatalf("Update(pending) error = %v", err)
	}
	if updated.Completed || updated.CompletedAt != nil {
		t.Errorf("Update(pending) = %+v, want completedAt cleared", updated)
	}

	todos, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(todos) != 1 || todos[0].CompletedAt != nil {
		t.Errorf("List() = %+v, want one pending todo", todos)
	}
}

func TestService_UpdateFields(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	td, err := svc.Create(ctx, "alice", domain.Draft{Title: "Draft"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	title := " Final "
	high := domain.PriorityHigh
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, "alice", td.ID, domain.Patch{
		Title:                  &title,
		Priority:               &high,
		ExpectedCompletionDate: domain.SomeTime(due),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Final" || updated.Priority != domain.PriorityHigh {
		t.Errorf("Update() = %+v", updated)
	}
	if updated.ExpectedCompletionDate == nil || !updated.ExpectedCompletionDate.Equal(due) {
		t.Errorf("Update() due = %v, want %v", updated.ExpectedCompletionDate, due)
	}

	updated, err = svc.Update(ctx, "alice", td.ID, domain.Patch{ExpectedCompletionDate: domain.NullTime()})
	if err != nil {
		t.Fatalf("Update(clear due) error = %v", err)
	}
	if updated.ExpectedCompletionDate != nil {
		t.Errorf("Update(clear due) due = %v, want nil", updated.ExpectedCompletionDate)
	}
	if updated.Title != "Final" {
		t.Errorf("Update(clear due) touched title: %q", updated.Title)
	}
}

func TestService_UpdateRejects(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	td, err := svc.Create(ctx, "alice", domain.Draft{Title: "Mine"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	blank := "  "
	if _, err := svc.Update(ctx, "alice", td.ID, domain.Patch{Title: &blank}); !errors.Is(err, domain.ErrEmptyTitle) {
		t.Errorf("Update(blank title) error = %v, want ErrEmptyTitle", err)
	}

	done := true
	if _, err := svc.Update(ctx, "bob", td.ID, domain.Patch{Completed: &done}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() by another owner error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, "alice", "missing", domain.Patch{Completed: &done}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	td, err := svc.Create(ctx, "alice", domain.Draft{Title: "Temp"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, "bob", td.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete() by another owner error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "alice", td.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(ctx, "alice", td.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}

	todos, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("List() after delete = %+v, want empty", todos)
	}
}

func TestRemoteError(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"nats: invalid todo: title is required", domain.ErrEmptyTitle},
		{"service error: todo not found", domain.ErrNotFound},
		{"invalid todo: expected completion date is not a valid date", domain.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if err := remoteError(errors.New(tt.msg)); !errors.Is(err, tt.want) {
				t.Errorf("remoteError(%q) = %v, want %v", tt.msg, err, tt.want)
			}
		})
	}

	other := errors.New("connection reset")
	if err := remoteError(other); err != other {
		t.Errorf("remoteError() = %v, want passthrough", err)
	}
}

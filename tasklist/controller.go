package tasklist

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/example/taskify/domain/todo"
	"golang.org/x/sync/singleflight"
)

// Controller holds the snapshot of one session's tasks.
//
// The snapshot is replaced wholesale under mu and the repository is called
// outside it. Concurrent operations on the same id are not serialized: each
// captures its own previous snapshot and the last one to resolve wins.
type Controller struct {
	repo   Repository
	now    func() time.Time
	loc    *time.Location
	notify func(Notice)

	mu       sync.Mutex
	snapshot []todo.Todo
	draft    todo.Draft

	reloads singleflight.Group
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source used for optimistic completedAt values
// and for overdue checks.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLocation sets the zone Timeline groups days in.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		c.loc = loc
	}
}

// WithNotifier registers a callback that receives every notice.
func WithNotifier(fn func(Notice)) Option {
	return func(c *Controller) {
		c.notify = fn
	}
}

// New creates a Controller seeded with initial.
func New(repo Repository, initial []todo.Todo, opts ...Option) *Controller {
	c := &Controller{
		repo:     repo,
		now:      time.Now,
		loc:      time.Local,
		snapshot: slices.Clone(initial),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.snapshot == nil {
		c.snapshot = make([]todo.Todo, 0)
	}
	return c
}

// ToggleCompletion flips a task optimistically and restores the previous
// snapshot if the repository rejects the change.
func (c *Controller) ToggleCompletion(ctx context.Context, id string) Notice {
	c.mu.Lock()
	previous := c.snapshot
	i := indexOf(previous, id)
	if i < 0 {
		c.mu.Unlock()
		return c.emit(Notice{Level: LevelError, TaskID: id, Message: "Task not found"})
	}
	task := previous[i]
	c.snapshot = toggled(previous, id, c.now())
	c.mu.Unlock()

	done := !task.Completed
	state := "pending"
	if done {
		state = "completed"
	}

	_, err := c.repo.Update(ctx, id, todo.Patch{Completed: &done})
	if err != nil {
		c.restore(previous)
		if errors.Is(err, ErrNetwork) {
			return c.emit(Notice{Level: LevelError, TaskID: id, Message: fmt.Sprintf("Error toggling task %q: %v", task.Title, err)})
		}
		return c.emit(Notice{Level: LevelError, TaskID: id, Message: fmt.Sprintf("Failed to mark task %q as %s", task.Title, state)})
	}
	return c.emit(Notice{Level: LevelSuccess, TaskID: id, Message: fmt.Sprintf("Task %q marked as %s", task.Title, state)})
}

// CreateTask stores draft and prepends the created task once the
// repository confirms it. A draft without a title is a no-op.
func (c *Controller) CreateTask(ctx context.Context, draft todo.Draft) Notice {
	draft, err := draft.Normalize()
	if err != nil {
		return c.emit(Notice{Level: LevelNone, Message: "Title is required"})
	}

	created, err := c.repo.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, ErrNetwork) {
			return c.emit(Notice{Level: LevelError, Message: "Something went wrong while creating the task"})
		}
		return c.emit(Notice{Level: LevelError, Message: "Failed to create todo"})
	}

	c.mu.Lock()
	c.snapshot = prepended(c.snapshot, created)
	c.draft = todo.Draft{}
	c.mu.Unlock()

	return c.emit(Notice{Level: LevelSuccess, TaskID: created.ID, Message: "Task created successfully"})
}

// UpdateTask sends patch and replaces the task with the repository's
// version on success. A patch with a blank title is a no-op.
func (c *Controller) UpdateTask(ctx context.Context, id string, patch todo.Patch) Notice {
	if err := patch.Validate(); err != nil {
		return c.emit(Notice{Level: LevelNone, TaskID: id, Message: "Title is required"})
	}

	updated, err := c.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrNetwork) {
			return c.emit(Notice{Level: LevelError, TaskID: id, Message: "Something went wrong while updating the task"})
		}
		return c.emit(Notice{Level: LevelError, TaskID: id, Message: "Failed to update task"})
	}

	c.mu.Lock()
	c.snapshot = replaced(c.snapshot, updated)
	c.mu.Unlock()

	return c.emit(Notice{Level: LevelSuccess, TaskID: id, Message: "Task updated successfully"})
}

// DeleteTask removes a task optimistically and restores the previous
// snapshot if the repository rejects the deletion.
func (c *Controller) DeleteTask(ctx context.Context, id string) Notice {
	c.mu.Lock()
	previous := c.snapshot
	if indexOf(previous, id) < 0 {
		c.mu.Unlock()
		return c.emit(Notice{Level: LevelError, TaskID: id, Message: "Task not found"})
	}
	c.snapshot = without(previous, id)
	c.mu.Unlock()

	if err := c.repo.Delete(ctx, id); err != nil {
		c.restore(previous)
		if errors.Is(err, ErrNetwork) {
			return c.emit(Notice{Level: LevelError, TaskID: id, Message: fmt.Sprintf("Error deleting task: %v", err)})
		}
		return c.emit(Notice{Level: LevelError, TaskID: id, Message: "Failed to delete task"})
	}
	return c.emit(Notice{Level: LevelSuccess, TaskID: id, Message: "Task deleted successfully"})
}

// Reload replaces the snapshot with the repository's list. Concurrent
// calls share one request.
func (c *Controller) Reload(ctx context.Context) error {
	v, err, _ := c.reloads.Do("list", func() (any, error) {
		return c.repo.List(ctx)
	})
	if err != nil {
		return err
	}
	todos, _ := v.([]todo.Todo)
	c.restore(slices.Clone(todos))
	return nil
}

// Snapshot returns a copy of the current tasks in display order.
func (c *Controller) Snapshot() []todo.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.snapshot)
}

// Statistics summarises the current snapshot.
func (c *Controller) Statistics() todo.Statistics {
	return todo.ComputeStatistics(c.Snapshot(), c.now())
}

// Timeline groups the current snapshot by creation day.
func (c *Controller) Timeline() []todo.DayGroup {
	return todo.GroupByCreationDay(c.Snapshot(), c.loc)
}

// Visible returns the tasks that pass f.
func (c *Controller) Visible(f todo.Filter) []todo.Todo {
	return todo.FilterTodos(c.Snapshot(), f)
}

// Draft returns the pending create form.
func (c *Controller) Draft() todo.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the pending create form.
func (c *Controller) SetDraft(d todo.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

func (c *Controller) restore(s []todo.Todo) {
	if s == nil {
		s = make([]todo.Todo, 0)
	}
	c.mu.Lock()
	c.snapshot = s
	c.mu.Unlock()
}

func (c *Controller) emit(n Notice) Notice {
	if c.notify != nil {
		c.notify(n)
	}
	return n
}

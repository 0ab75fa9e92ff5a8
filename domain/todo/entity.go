package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrValidation is the parent of every input validation failure.
	ErrValidation = errors.New("invalid todo")
	// ErrEmptyTitle is returned when a title is empty after trimming.
	ErrEmptyTitle = fmt.Errorf("%w: title is required", ErrValidation)
	// ErrInvalidDate is returned when an expected completion date cannot be parsed.
	ErrInvalidDate = fmt.Errorf("%w: expected completion date is not a valid date", ErrValidation)
	// ErrNotFound is returned when no todo with the id is owned by the caller.
	ErrNotFound = errors.New("todo not found")
	// ErrUnauthorized is returned when an operation has no owner to scope it to.
	ErrUnauthorized = errors.New("unauthorized")
)

// Todo is a single user-owned unit of work.
type Todo struct {
	ID                     string     `gorm:"primaryKey;type:text" json:"id"`
	Title                  string     `gorm:"not null;type:text" json:"title"`
	Description            string     `gorm:"not null;default:'';type:text" json:"description"`
	Priority               Priority   `gorm:"not null;default:0" json:"priority"`
	Completed              bool       `gorm:"not null;default:false" json:"completed"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate"`
	CreatedAt              time.Time  `gorm:"index" json:"createdAt"`
	CompletedAt            *time.Time `json:"completedAt"`
	OwnerID                string     `gorm:"index;not null;type:text" json:"ownerId"`
}

// TableName returns the table name for the Todo entity.
func (Todo) TableName() string {
	return "todos"
}

// SetCompleted flips the completion state, keeping CompletedAt present
// exactly when Completed is true.
func (t *Todo) SetCompleted(done bool, now time.Time) {
	t.Completed = done
	if done {
		at := now
		t.CompletedAt = &at
		return
	}
	t.CompletedAt = nil
}

// IsOverdue reports whether the todo has a due date strictly before now
// and is not completed.
func (t Todo) IsOverdue(now time.Time) bool {
	return !t.Completed && t.ExpectedCompletionDate != nil && t.ExpectedCompletionDate.Before(now)
}

// Apply changes the fields present in p and returns their JSON names.
// ID, OwnerID and CreatedAt are never touched.
func (t *Todo) Apply(p Patch, now time.Time) []string {
	var changed []string
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
		changed = append(changed, "title")
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
		changed = append(changed, "description")
	}
	if p.Priority != nil {
		t.Priority = NormalizePriority(int(*p.Priority))
		changed = append(changed, "priority")
	}
	if p.ExpectedCompletionDate.Set {
		t.ExpectedCompletionDate = cloneTime(p.ExpectedCompletionDate.Value)
		changed = append(changed, "expectedCompletionDate")
	}
	if p.Completed != nil {
		t.SetCompleted(*p.Completed, now)
		changed = append(changed, "completed")
	}
	return changed
}

// Draft holds the user-supplied fields of a todo that does not exist yet.
type Draft struct {
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Priority               Priority   `json:"priority"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate"`
}

// Normalize trims text fields and coerces the priority. It fails with
// ErrEmptyTitle when nothing is left of the title.
func (d Draft) Normalize() (Draft, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return Draft{}, ErrEmptyTitle
	}
	d.Description = strings.TrimSpace(d.Description)
	d.Priority = NormalizePriority(int(d.Priority))
	d.ExpectedCompletionDate = cloneTime(d.ExpectedCompletionDate)
	return d, nil
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title                  *string      `json:"title,omitempty"`
	Description            *string      `json:"description,omitempty"`
	Priority               *Priority    `json:"priority,omitempty"`
	Completed              *bool        `json:"completed,omitempty"`
	ExpectedCompletionDate OptionalTime `json:"expectedCompletionDate,omitzero"`
}

// Validate rejects a present title that trims to empty.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Completed == nil && !p.ExpectedCompletionDate.Set
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

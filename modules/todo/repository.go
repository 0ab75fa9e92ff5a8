package todo

import (
	"context"
	"errors"

	domain "github.com/example/taskify/domain/todo"
	"gorm.io/gorm"
)

// Repository handles todo persistence using GORM. Every read and write is
// scoped to an owner.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByOwner returns the owner's todos, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0)
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&todos)
	if result.Error != nil {
		return nil, result.Error
	}
	return todos, nil
}

// Create inserts a new todo.
func (r *Repository) Create(ctx context.Context, t *domain.Todo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindOwned returns the todo with id if ownerID owns it.
func (r *Repository) FindOwned(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	var t domain.Todo
	result := r.db.WithContext(ctx).First(&t, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, result.Error
	}
	return &t, nil
}

// Save writes every column of t, including zero values.
func (r *Repository) Save(ctx context.Context, t *domain.Todo) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteOwned removes the todo with id if ownerID owns it.
func (r *Repository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&domain.Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

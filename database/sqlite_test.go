package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
)

type record struct {
	ID    string `gorm:"primaryKey"`
	Email string `gorm:"uniqueIndex"`
}

func TestOpenMigratesAndTranslatesErrors(t *testing.T) {
	db, err := Open(":memory:", &record{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer Close(db)

	if err := db.Create(&record{ID: "1", Email: "a@example.com"}).Error; err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err = db.Create(&record{ID: "2", Email: "a@example.com"}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("duplicate insert error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestHealth(t *testing.T) {
	ctx := context.Background()

	if h := Health(ctx, nil, "x.db"); h.Healthy {
		t.Errorf("Health(nil) = healthy, want unhealthy")
	}

	path := filepath.Join(t.TempDir(), "health.db")
	db, err := Open(path, &record{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	h := Health(ctx, db, path)
	if !h.Healthy || h.Details["path"] != path {
		t.Errorf("Health() = %+v, want healthy with path", h)
	}

	Close(db)
	if h := Health(ctx, db, path); h.Healthy {
		t.Errorf("Health() after Close = healthy, want unhealthy")
	}
}

func TestCloseNil(t *testing.T) {
	Close(nil)
}

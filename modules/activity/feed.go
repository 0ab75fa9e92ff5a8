package activity

import (
	"sync"
	"time"
)

// Entry types recorded in a feed.
const (
	TypeCreated   = "todo_created"
	TypeCompleted = "todo_completed"
	TypeReopened  = "todo_reopened"
	TypeUpdated   = "todo_updated"
	TypeDeleted   = "todo_deleted"
)

// Entry is one line of a user's activity feed.
type Entry struct {
	Type    string    `json:"type"`
	TodoID  string    `json:"todoId"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Feed keeps the most recent entries per owner. Older entries are dropped
// once an owner's feed reaches its capacity.
type Feed struct {
	mu      sync.RWMutex
	size    int
	entries map[string][]Entry
}

// NewFeed creates a Feed holding at most size entries per owner.
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 1
	}
	return &Feed{
		size:    size,
		entries: make(map[string][]Entry),
	}
}

// Record appends e to the owner's feed.
func (f *Feed) Record(ownerID string, e Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := append(f.entries[ownerID], e)
	if len(list) > f.size {
		list = append([]Entry(nil), list[len(list)-f.size:]...)
	}
	f.entries[ownerID] = list
}

// Recent returns up to limit entries for the owner, newest first.
// A non-positive limit returns the whole feed.
func (f *Feed) Recent(ownerID string, limit int) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	list := f.entries[ownerID]
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	result := make([]Entry, 0, limit)
	for i := len(list) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, list[i])
	}
	return result
}

package activity

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/example/taskify/config"
	"github.com/example/taskify/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_NewestFirstAndBounded(t *testing.T) {
	feed := NewFeed(3)
	for i := 1; i <= 5; i++ {
		feed.Record("alice", Entry{TodoID: fmt.Sprintf("t%d", i)})
	}
	feed.Record("bob", Entry{TodoID: "b1"})

	got := feed.Recent("alice", 0)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"t5", "t4", "t3"}, ids(got))

	assert.Equal(t, []string{"t5", "t4"}, ids(feed.Recent("alice", 2)))
	assert.Equal(t, []string{"b1"}, ids(feed.Recent("bob", 10)))
	assert.Empty(t, feed.Recent("carol", 5))
}

func TestFeed_ConcurrentRecord(t *testing.T) {
	feed := NewFeed(50)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				feed.Record("alice", Entry{TodoID: fmt.Sprintf("%d-%d", i, j)})
				_ = feed.Recent("alice", 5)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, feed.Recent("alice", 0), 50)
}

func TestActivityModule_Handlers(t *testing.T) {
	m := NewModule(config.Activity{FeedSize: 10})
	ctx := context.Background()
	at := time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, m.handleTodoCreated(ctx, events.TodoCreatedEvent{TodoID: "t1", OwnerID: "alice", Title: "Ship", CreatedAt: at}, nil))
	require.NoError(t, m.handleTodoUpdated(ctx, events.TodoUpdatedEvent{TodoID: "t1", OwnerID: "alice", Title: "Ship", Fields: []string{"title", "priority"}, UpdatedAt: at.Add(time.Minute)}, nil))
	require.NoError(t, m.handleTodoCompleted(ctx, events.TodoCompletedEvent{TodoID: "t1", OwnerID: "alice", Title: "Ship", CompletedAt: at.Add(2 * time.Minute)}, nil))
	require.NoError(t, m.handleTodoReopened(ctx, events.TodoReopenedEvent{TodoID: "t1", OwnerID: "alice", Title: "Ship", ReopenedAt: at.Add(3 * time.Minute)}, nil))
	require.NoError(t, m.handleTodoDeleted(ctx, events.TodoDeletedEvent{TodoID: "t1", OwnerID: "alice", Title: "Ship", DeletedAt: at.Add(4 * time.Minute)}, nil))

	entries, err := m.Recent(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	var types []string
	for _, e := range entries {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{TypeDeleted, TypeReopened, TypeCompleted, TypeUpdated, TypeCreated}, types)
	assert.Equal(t, `Updated title, priority of task "Ship"`, entries[3].Message)
	assert.Equal(t, at, entries[4].At)

	_, err = m.Recent(ctx, "", 5)
	assert.Error(t, err)
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.TodoID)
	}
	return out
}

func TestModule_Lifecycle(t *testing.T) {
	m := NewModule(config.Activity{FeedSize: 2})
	ctx := context.Background()

	assert.Equal(t, "activity", m.Name())
	require.NoError(t, m.Start(ctx))

	_, err := m.Recent(ctx, "", 5)
	assert.Error(t, err)

	entries, err := m.Recent(ctx, "alice", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, m.Stop(ctx))
}

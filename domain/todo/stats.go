package todo

import (
	"math"
	"slices"
	"strings"
	"time"
)

// Statistics summarises a set of todos.
type Statistics struct {
	Total                int `json:"total"`
	Completed            int `json:"completed"`
	Pending              int `json:"pending"`
	Overdue              int `json:"overdue"`
	CompletionPercentage int `json:"completionPercentage"`
}

// ComputeStatistics counts todos by state. Overdue is judged against now.
func ComputeStatistics(todos []Todo, now time.Time) Statistics {
	s := Statistics{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			s.Completed++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionPercentage = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	return s
}

// DayGroup is one calendar day of a creation timeline.
type DayGroup struct {
	Day   string `json:"day"`
	Todos []Todo `json:"todos"`
}

// GroupByCreationDay buckets todos by the calendar day of CreatedAt in loc.
// Days run newest first and so do the todos inside each day. Equal
// timestamps keep their input order.
func GroupByCreationDay(todos []Todo, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.UTC
	}
	sorted := slices.Clone(todos)
	slices.SortStableFunc(sorted, func(a, b Todo) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	groups := make([]DayGroup, 0)
	for _, t := range sorted {
		day := t.CreatedAt.In(loc).Format(DayLayout)
		if n := len(groups); n > 0 && groups[n-1].Day == day {
			groups[n-1].Todos = append(groups[n-1].Todos, t)
			continue
		}
		groups = append(groups, DayGroup{Day: day, Todos: []Todo{t}})
	}
	return groups
}

// Status selects todos by completion state.
type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// ParseStatus maps a query value to a Status. Empty means all.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusAll:
		return StatusAll, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusPending:
		return StatusPending, true
	}
	return "", false
}

// Filter narrows a list by status and a case-insensitive search over
// title and description.
type Filter struct {
	Status Status
	Query  string
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Todo) bool {
	switch f.Status {
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusPending:
		if t.Completed {
			return false
		}
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// FilterTodos returns the todos matching f, in their original order.
func FilterTodos(todos []Todo, f Filter) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

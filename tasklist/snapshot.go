package tasklist

import (
	"slices"
	"time"

	"github.com/example/taskify/domain/todo"
)

// The helpers below never modify their input; each returns a new slice.

func indexOf(s []todo.Todo, id string) int {
	return slices.IndexFunc(s, func(t todo.Todo) bool { return t.ID == id })
}

// toggled flips completion of the task with id, deriving completedAt from now.
func toggled(s []todo.Todo, id string, now time.Time) []todo.Todo {
	out := slices.Clone(s)
	if i := indexOf(out, id); i >= 0 {
		out[i].SetCompleted(!out[i].Completed, now)
	}
	return out
}

// without drops the task with id and keeps the others in order.
func without(s []todo.Todo, id string) []todo.Todo {
	out := make([]todo.Todo, 0, len(s))
	for _, t := range s {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// replaced swaps in t at the position of the task with the same id.
func replaced(s []todo.Todo, t todo.Todo) []todo.Todo {
	out := slices.Clone(s)
	if i := indexOf(out, t.ID); i >= 0 {
		out[i] = t
	}
	return out
}

// prepended puts t in front.
func prepended(s []todo.Todo, t todo.Todo) []todo.Todo {
	out := make([]todo.Todo, 0, len(s)+1)
	out = append(out, t)
	return append(out, s...)
}

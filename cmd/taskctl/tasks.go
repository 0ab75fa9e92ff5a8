package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/taskify/domain/todo"
	"github.com/example/taskify/tasklist"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var status, search, tz string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show statistics and tasks grouped by creation day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := todo.ParseStatus(status)
			if !ok {
				return fmt.Errorf("invalid --status %q (all|completed|pending)", status)
			}
			loc := time.Local
			if tz != "" {
				l, err := time.LoadLocation(tz)
				if err != nil {
					return fmt.Errorf("invalid --tz: %w", err)
				}
				loc = l
			}

			c, err := app.controller(cmd.Context(), tasklist.WithLocation(loc))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printStats(out, c.Statistics())
			visible := c.Visible(todo.Filter{Status: st, Query: search})
			if len(visible) == 0 {
				fmt.Fprintln(out, "\nNo tasks.")
				return nil
			}
			now := app.now()
			for _, g := range todo.GroupByCreationDay(visible, loc) {
				fmt.Fprintf(out, "\n%s\n", g.Day)
				for _, t := range g.Todos {
					printTask(out, t, now)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "Filter by status (all|completed|pending)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive match on title or description")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA time zone for day grouping (default: local)")
	return cmd
}

func printStats(w io.Writer, s todo.Statistics) {
	fmt.Fprintf(w, "%d tasks, %d completed, %d pending, %d overdue (%d%% done)\n",
		s.Total, s.Completed, s.Pending, s.Overdue, s.CompletionPercentage)
}

func printTask(w io.Writer, t todo.Todo, now time.Time) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "  %s %s  %s (%s)  created %s", box, t.ID, t.Title, t.Priority, tasklist.RelativeTime(t.CreatedAt, now))
	if t.ExpectedCompletionDate != nil {
		fmt.Fprintf(w, "  due %s", t.ExpectedCompletionDate.Format("Jan 2, 2006"))
	}
	if t.IsOverdue(now) {
		fmt.Fprint(w, "  OVERDUE")
	}
	fmt.Fprintln(w)
}

func newAddCmd(app *App) *cobra.Command {
	var description, priority, due string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := todo.Draft{
				Title:       args[0],
				Description: description,
				Priority:    todo.ParsePriority(priority),
			}
			d, err := todo.ParseDate(due)
			if err != nil {
				return err
			}
			draft.ExpectedCompletionDate = d

			return app.mutate(cmd, func(ctx context.Context, c *tasklist.Controller) tasklist.Notice {
				return c.CreateTask(ctx, draft)
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	cmd.Flags().StringVar(&priority, "priority", "low", "Priority (low|medium|high or 0..2)")
	cmd.Flags().StringVar(&due, "due", "", "Expected completion date (2006-01-02 or RFC 3339)")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between completed and pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(cmd, func(ctx context.Context, c *tasklist.Controller) tasklist.Notice {
				return c.ToggleCompletion(ctx, args[0])
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var title, description, priority, due string
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch todo.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("priority") {
				p := todo.ParsePriority(priority)
				patch.Priority = &p
			}
			switch {
			case clearDue && flags.Changed("due"):
				return fmt.Errorf("--due and --clear-due are mutually exclusive")
			case clearDue:
				patch.ExpectedCompletionDate = todo.NullTime()
			case flags.Changed("due"):
				d, err := todo.ParseDate(due)
				if err != nil {
					return err
				}
				if d == nil {
					patch.ExpectedCompletionDate = todo.NullTime()
				} else {
					patch.ExpectedCompletionDate = todo.SomeTime(*d)
				}
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change")
			}

			return app.mutate(cmd, func(ctx context.Context, c *tasklist.Controller) tasklist.Notice {
				return c.UpdateTask(ctx, args[0], patch)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (low|medium|high or 0..2)")
	cmd.Flags().StringVar(&due, "due", "", "New expected completion date")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the expected completion date")
	return cmd
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutate(cmd, func(ctx context.Context, c *tasklist.Controller) tasklist.Notice {
				return c.DeleteTask(ctx, args[0])
			})
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/taskify/tasklist"
	"github.com/spf13/cobra"
)

// App carries the settings shared by every command.
type App struct {
	Server string
	Token  string

	client tasklist.Doer
	now    func() time.Time
}

// NewRootCmd builds the command tree. A nil client means http.DefaultClient.
func NewRootCmd(client tasklist.Doer) *cobra.Command {
	app := &App{client: client, now: time.Now}

	cmd := &cobra.Command{
		Use:          "taskctl",
		Short:        "Manage your Taskify tasks from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Sign in and keep the token for later commands
  export TASKIFY_TOKEN=$(taskctl login --email robin@example.com --password '...')

  # Show pending tasks grouped by day
  taskctl list --status pending

  # Add, complete and remove a task
  taskctl add "Ship release" --priority high --due 2024-06-01
  taskctl done <id>
  taskctl rm <id>
`),
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("TASKIFY_SERVER", "http://localhost:3000"), "Base URL of the Taskify server")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("TASKIFY_TOKEN", ""), "Access token printed by taskctl login")

	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))

	return cmd
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (a *App) repository() (*tasklist.HTTPRepository, error) {
	if a.Token == "" {
		return nil, errors.New("not signed in: pass --token or set TASKIFY_TOKEN")
	}
	return tasklist.NewHTTPRepository(a.Server, a.Token, a.client), nil
}

// controller loads the caller's tasks and wraps them in a Controller.
func (a *App) controller(ctx context.Context, opts ...tasklist.Option) (*tasklist.Controller, error) {
	repo, err := a.repository()
	if err != nil {
		return nil, err
	}
	todos, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	opts = append([]tasklist.Option{tasklist.WithClock(a.now)}, opts...)
	return tasklist.New(repo, todos, opts...), nil
}

// mutate runs op on a freshly loaded controller and prints its notice.
func (a *App) mutate(cmd *cobra.Command, op func(context.Context, *tasklist.Controller) tasklist.Notice) error {
	ctx := cmd.Context()
	c, err := a.controller(ctx)
	if err != nil {
		return err
	}

	n := op(ctx, c)
	if n.Level != tasklist.LevelSuccess {
		return errors.New(n.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), n.Message)
	if n.TaskID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  id: %s\n", n.TaskID)
	}
	return nil
}

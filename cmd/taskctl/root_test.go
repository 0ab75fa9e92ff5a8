package main

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/example/taskify/database"
	tododomain "github.com/example/taskify/domain/todo"
	userdomain "github.com/example/taskify/domain/user"
	"github.com/example/taskify/modules/api"
	"github.com/example/taskify/modules/auth"
	"github.com/example/taskify/modules/todo"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const server = "http://taskify.test"

type fiberDoer struct {
	app *fiber.App
}

func (d fiberDoer) Do(req *http.Request) (*http.Response, error) {
	return d.app.Test(req, -1)
}

func newTestServer(t *testing.T) fiberDoer {
	t.Helper()

	open := func(model any) *gorm.DB {
		db, err := database.Open(":memory:", model)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { database.Close(db) })
		return db
	}

	authSvc := auth.NewAuthService(
		auth.NewUserRepository(open(&userdomain.User{})),
		auth.NewPasswordHasher(bcrypt.MinCost),
		auth.NewJWTManager(auth.JWTConfig{
			SecretKey:            "cli-secret",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: time.Hour,
			Issuer:               "taskify-cli",
		}),
	)
	todoSvc := todo.NewService(todo.NewRepository(open(&tododomain.Todo{})), nil)
	return fiberDoer{app: api.NewRouter(api.Deps{Auth: authSvc, Todos: todoSvc})}
}

func run(t *testing.T, doer fiberDoer, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd(doer)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, doer fiberDoer, args ...string) string {
	t.Helper()
	out, err := run(t, doer, args...)
	if err != nil {
		t.Fatalf("taskctl %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func createdID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if id, ok := strings.CutPrefix(strings.TrimSpace(line), "id: "); ok {
			return id
		}
	}
	t.Fatalf("no id in output:\n%s", out)
	return ""
}

func signIn(t *testing.T, doer fiberDoer) string {
	t.Helper()
	mustRun(t, doer, "register", "--name", "Robin Vale", "--email", "robin@example.com", "--password", "Harbor!2291", "--accept-terms")
	return strings.TrimSpace(mustRun(t, doer, "login", "--email", "robin@example.com", "--password", "Harbor!2291"))
}

func TestRootCmd_Registration(t *testing.T) {
	want := map[string]bool{"register": false, "login": false, "list": false, "add": false, "done": false, "edit": false, "rm": false}
	for _, c := range NewRootCmd(nil).Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %q command to be registered", name)
		}
	}
}

func TestTaskLifecycle(t *testing.T) {
	doer := newTestServer(t)
	token := signIn(t, doer)
	if token == "" {
		t.Fatal("login printed no token")
	}

	out := mustRun(t, doer, "--token", token, "add", "Ship release", "--priority", "high", "--due", "2020-01-01")
	if !strings.Contains(out, "Task created successfully") {
		t.Fatalf("add output = %q", out)
	}
	id := createdID(t, out)

	out = mustRun(t, doer, "--token", token, "list", "--tz", "UTC")
	for _, want := range []string{"1 tasks, 0 completed, 1 pending, 1 overdue (0% done)", "[ ] " + id, "Ship release (High)", "OVERDUE"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, doer, "--token", token, "done", id)
	if !strings.Contains(out, `Task "Ship release" marked as completed`) {
		t.Errorf("done output = %q", out)
	}

	out = mustRun(t, doer, "--token", token, "list", "--status", "completed")
	if !strings.Contains(out, "[x] "+id) || strings.Contains(out, "OVERDUE") {
		t.Errorf("completed list = %q", out)
	}

	out = mustRun(t, doer, "--token", token, "edit", id, "--title", "Ship 2.0", "--clear-due")
	if !strings.Contains(out, "Task updated successfully") {
		t.Errorf("edit output = %q", out)
	}
	out = mustRun(t, doer, "--token", token, "list", "--search", "2.0")
	if !strings.Contains(out, "Ship 2.0") || strings.Contains(out, "  due ") {
		t.Errorf("list after edit = %q", out)
	}

	out = mustRun(t, doer, "--token", token, "rm", id)
	if !strings.Contains(out, "Task deleted successfully") {
		t.Errorf("rm output = %q", out)
	}
	out = mustRun(t, doer, "--token", token, "list")
	if !strings.Contains(out, "No tasks.") {
		t.Errorf("list after rm = %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	doer := newTestServer(t)
	token := signIn(t, doer)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing token", []string{"--token", "", "list"}, "not signed in"},
		{"bad token", []string{"--token", "nope", "list"}, "loading tasks"},
		{"unknown task", []string{"--token", token, "done", "missing"}, "Task not found"},
		{"blank title", []string{"--token", token, "add", "   "}, "Title is required"},
		{"empty edit", []string{"--token", token, "edit", "missing"}, "nothing to change"},
		{"conflicting due flags", []string{"--token", token, "edit", "x", "--due", "2024-06-01", "--clear-due"}, "mutually exclusive"},
		{"bad status", []string{"--token", token, "list", "--status", "done"}, "invalid --status"},
		{"bad zone", []string{"--token", token, "list", "--tz", "Mars/Olympus"}, "invalid --tz"},
		{"bad date", []string{"--token", token, "add", "x", "--due", "someday"}, "not a valid date"},
		{"wrong password", []string{"login", "--email", "robin@example.com", "--password", "Wrong!1234"}, "signing in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, doer, tt.args...)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

package tasklist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/example/taskify/domain/todo"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPRepository implements Repository against the task service's REST API.
type HTTPRepository struct {
	baseURL string
	token   string
	client  Doer
}

var _ Repository = (*HTTPRepository)(nil)

// NewHTTPRepository creates a repository that authenticates with token.
// A nil client means http.DefaultClient.
func NewHTTPRepository(baseURL, token string, client Doer) *HTTPRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

type createBody struct {
	Title                  string        `json:"title"`
	Description            string        `json:"description"`
	Priority               todo.Priority `json:"priority"`
	ExpectedCompletionDate *string       `json:"expectedCompletionDate"`
}

// List fetches every task of the caller, newest first.
func (r *HTTPRepository) List(ctx context.Context) ([]todo.Todo, error) {
	todos := make([]todo.Todo, 0)
	if err := r.do(ctx, http.MethodGet, "/api/user/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Create posts draft and returns the stored task.
func (r *HTTPRepository) Create(ctx context.Context, draft todo.Draft) (todo.Todo, error) {
	body := createBody{
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
	}
	if draft.ExpectedCompletionDate != nil {
		s := draft.ExpectedCompletionDate.UTC().Format(timeLayout)
		body.ExpectedCompletionDate = &s
	}

	var created todo.Todo
	if err := r.do(ctx, http.MethodPost, "/api/user/todos", body, &created); err != nil {
		return todo.Todo{}, err
	}
	return created, nil
}

// Update sends the fields present in patch.
func (r *HTTPRepository) Update(ctx context.Context, id string, patch todo.Patch) (todo.Todo, error) {
	var updated todo.Todo
	if err := r.do(ctx, http.MethodPut, "/api/user/todos/"+url.PathEscape(id), patch, &updated); err != nil {
		return todo.Todo{}, err
	}
	return updated, nil
}

// Delete removes the task with id.
func (r *HTTPRepository) Delete(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, "/api/user/todos/"+url.PathEscape(id), nil, nil)
}

func (r *HTTPRepository) do(ctx context.Context, method, path string, in, out any) error {
	return send(ctx, r.client, method, r.baseURL+path, r.token, in, out)
}

const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func send(ctx context.Context, client Doer, method, url, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrInternal, err)
	}
	return nil
}

func statusError(code int, data []byte) error {
	var eb errorBody
	_ = json.Unmarshal(data, &eb)
	msg := eb.Message
	if msg == "" {
		msg = http.StatusText(code)
	}

	var sentinel error
	switch code {
	case http.StatusBadRequest:
		sentinel = ErrValidation
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusNotFound:
		sentinel = ErrNotFound
	default:
		sentinel = ErrInternal
	}
	return fmt.Errorf("%w: %s (status %d)", sentinel, msg, code)
}

package api

import (
	"time"

	domain "github.com/example/taskify/domain/todo"
)

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// UserResponse represents a user response.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileResponse is the signed-in user together with their task statistics.
type ProfileResponse struct {
	User       UserResponse      `json:"user"`
	Statistics domain.Statistics `json:"statistics"`
}

// CreateTodoRequest is the body of POST /api/user/todos.
type CreateTodoRequest struct {
	Title                  string              `json:"title"`
	Description            string              `json:"description"`
	Priority               domain.Priority     `json:"priority"`
	ExpectedCompletionDate domain.OptionalTime `json:"expectedCompletionDate,omitzero"`
}

// Draft converts the request into a domain draft.
func (r CreateTodoRequest) Draft() domain.Draft {
	return domain.Draft{
		Title:                  r.Title,
		Description:            r.Description,
		Priority:               r.Priority,
		ExpectedCompletionDate: r.ExpectedCompletionDate.Value,
	}
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

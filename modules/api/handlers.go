package api

import (
	"errors"
	"strings"

	userdomain "github.com/example/taskify/domain/user"
	"github.com/example/taskify/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req auth.Registration
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	tokens, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTokenResponse(tokens))
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	tokens, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTokenResponse(tokens))
}

// Profile returns the signed-in user and their task statistics.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	user, err := h.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return unauthorized(c, "User not authenticated")
		}
		return internalError(c, err, "Failed to retrieve user profile")
	}

	todos, err := h.todos.List(c.UserContext(), claims.UserID)
	if err != nil {
		return handleTodoError(c, err, "Failed to retrieve user profile")
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		User:       toUserResponse(user),
		Statistics: h.stats(todos),
	})
}

func toUserResponse(u *userdomain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toTokenResponse(t *userdomain.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresIn:    t.ExpiresIn,
		TokenType:    t.TokenType,
	}
}

package api

import (
	"errors"
	"strconv"
	"time"

	domain "github.com/example/taskify/domain/todo"
	"github.com/gofiber/fiber/v2"
)

// ListTodos returns the caller's todos, newest first, optionally narrowed
// by the status and q query parameters.
func (h *Handlers) ListTodos(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	status, valid := domain.ParseStatus(c.Query("status"))
	if !valid {
		return badRequest(c, "Status must be one of all, completed or pending")
	}

	todos, err := h.todos.List(c.UserContext(), claims.UserID)
	if err != nil {
		return handleTodoError(c, err, "Failed to fetch todos")
	}

	return c.Status(fiber.StatusOK).JSON(domain.FilterTodos(todos, domain.Filter{
		Status: status,
		Query:  c.Query("q"),
	}))
}

// CreateTodo creates a todo owned by the caller.
func (h *Handlers) CreateTodo(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(c, err)
	}

	t, err := h.todos.Create(c.UserContext(), claims.UserID, req.Draft())
	if err != nil {
		return handleTodoError(c, err, "Failed to create todo")
	}

	return c.Status(fiber.StatusCreated).JSON(t)
}

// UpdateTodo changes the fields present in the body.
func (h *Handlers) UpdateTodo(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var patch domain.Patch
	if err := c.BodyParser(&patch); err != nil {
		return bodyError(c, err)
	}

	t, err := h.todos.Update(c.UserContext(), claims.UserID, c.Params("id"), patch)
	if err != nil {
		return handleTodoError(c, err, "Failed to update todo")
	}

	return c.Status(fiber.StatusOK).JSON(t)
}

// DeleteTodo removes a todo owned by the caller.
func (h *Handlers) DeleteTodo(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	if err := h.todos.Delete(c.UserContext(), claims.UserID, c.Params("id")); err != nil {
		return handleTodoError(c, err, "Failed to delete todo")
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{Message: "Todo deleted successfully"})
}

// TodoStats returns the caller's task statistics.
func (h *Handlers) TodoStats(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	todos, err := h.todos.List(c.UserContext(), claims.UserID)
	if err != nil {
		return handleTodoError(c, err, "Failed to fetch todos")
	}

	return c.Status(fiber.StatusOK).JSON(h.stats(todos))
}

// TodoTimeline groups the caller's todos by creation day in the zone given
// by the tz query parameter, UTC by default.
func (h *Handlers) TodoTimeline(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return badRequest(c, "Unknown time zone")
		}
		loc = l
	}

	todos, err := h.todos.List(c.UserContext(), claims.UserID)
	if err != nil {
		return handleTodoError(c, err, "Failed to fetch todos")
	}

	return c.Status(fiber.StatusOK).JSON(domain.GroupByCreationDay(todos, loc))
}

// Activity returns the caller's recent activity feed.
func (h *Handlers) Activity(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return badRequest(c, "Limit must be a positive integer")
		}
		limit = n
	}

	entries, err := h.activity.Recent(c.UserContext(), claims.UserID, limit)
	if err != nil {
		return internalError(c, err, "Failed to fetch activity")
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

func (h *Handlers) stats(todos []domain.Todo) domain.Statistics {
	return domain.ComputeStatistics(todos, h.now())
}

func bodyError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidDate) {
		return badRequest(c, "Expected completion date is not a valid date")
	}
	return badRequest(c, "Invalid request body")
}

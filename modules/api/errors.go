package api

import (
	"errors"
	"log"
	"strings"

	domain "github.com/example/taskify/domain/todo"
	"github.com/example/taskify/modules/auth"
	"github.com/gofiber/fiber/v2"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

func internalError(c *fiber.Ctx, err error, message string) error {
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: message,
	})
}

// handleTodoError maps todo failures to status codes without leaking
// internal error text.
func handleTodoError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return unauthorized(c, "User not authenticated")
	case errors.Is(err, domain.ErrEmptyTitle):
		return badRequest(c, "Title is required")
	case errors.Is(err, domain.ErrInvalidDate):
		return badRequest(c, "Expected completion date is not a valid date")
	case errors.Is(err, domain.ErrValidation):
		return badRequest(c, "Invalid todo")
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Todo not found",
		})
	default:
		return internalError(c, err, fallback)
	}
}

// handleAuthError maps authentication failures to status codes.
func handleAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidRegistration):
		return badRequest(c, ruleMessage(err, auth.ErrInvalidRegistration))
	case errors.Is(err, auth.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return unauthorized(c, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrUserNotFound):
		return unauthorized(c, "Invalid or expired refresh token")
	default:
		return internalError(c, err, "An internal error occurred")
	}
}

// ruleMessage extracts the rule text following "<parent>: " and
// capitalises it.
func ruleMessage(err, parent error) string {
	msg := err.Error()
	prefix := parent.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		msg = msg[i+len(prefix):]
	}
	if msg == "" {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("[api] Unhandled error: %v", err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}

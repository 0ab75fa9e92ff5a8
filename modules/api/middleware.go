package api

import (
	"strings"

	domain "github.com/example/taskify/domain/user"
	"github.com/example/taskify/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey holds the *domain.Claims of an authenticated request.
	UserContextKey = "user"
	// UserIDContextKey holds the caller's user id for the rate limiter.
	UserIDContextKey = "user_id"
)

// bearerToken extracts the token from an Authorization header. The message
// is non-empty when the header is unusable.
func bearerToken(header string) (token, message string) {
	if header == "" {
		return "", "Authorization header is required"
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", "Invalid authorization header format. Use: Bearer <token>"
	}
	if token = strings.TrimSpace(rest); token == "" {
		return "", "Token is required"
	}
	return token, ""
}

// AuthMiddleware rejects requests without a valid access token and stores
// the caller's claims in Locals.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, msg := bearerToken(c.Get(fiber.HeaderAuthorization))
		if msg != "" {
			return unauthorized(c, msg)
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(UserContextKey, claims)
		c.Locals(UserIDContextKey, claims.UserID)
		return c.Next()
	}
}

// claimsFrom returns the claims AuthMiddleware stored, if any.
func claimsFrom(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok && claims != nil && claims.UserID != ""
}

package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gradlink/gradlink-backend/internal/dto"
	"github.com/gradlink/gradlink-backend/internal/services"
)

const (
	localsUID   = "uid"
	localsEmail = "email"
)

// Protected verifies the session cookie and threads the verified claims
// through the request context. Handlers read the caller's identity via
// UID, never from request input.
func Protected(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(services.SessionCookieName)
		if cookie == "" {
			return unauthorized(c)
		}

		claims, err := tokens.Verify(cookie)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(localsUID, claims.Subject)
		c.Locals(localsEmail, claims.Email)
		return c.Next()
	}
}

// UID returns the authenticated account uid set by Protected.
func UID(c *fiber.Ctx) (string, error) {
	uid, ok := c.Locals(localsUID).(string)
	if !ok || uid == "" {
		return "", errors.New("no authenticated user in context")
	}
	return uid, nil
}

// Email returns the email claim set by Protected.
func Email(c *fiber.Ctx) (string, error) {
	email, ok := c.Locals(localsEmail).(string)
	if !ok || email == "" {
		return "", errors.New("no authenticated user in context")
	}
	return email, nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Message: "Unauthorized",
	})
}

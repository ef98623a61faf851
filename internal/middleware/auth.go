package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminToken guards the admin HTTP surface with the shared-secret
// X-Admin-Token header. Socket-level admin events are gated separately by
// the join-time admin claim.
func AdminToken(expected string) fiber.Handler {
	secret := []byte(expected)
	return func(c *fiber.Ctx) error {
		token := c.Get("X-Admin-Token")
		if token == "" || subtle.ConstantTimeCompare([]byte(token), secret) != 1 {
			return c.Status(403).JSON(fiber.Map{"error": "Admin access required"})
		}
		return c.Next()
	}
}

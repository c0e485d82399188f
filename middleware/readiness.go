// middleware/readiness.go
package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// ReadinessGate refuses requests until the store's cold load has settled.
// Main also blocks before listening, so this only fires in the window where
// the listener is up but the load is still running.
func ReadinessGate(isReady func() bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isReady() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "service is still loading, try again shortly",
			})
		}
		return c.Next()
	}
}

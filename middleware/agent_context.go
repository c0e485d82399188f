// middleware/agent_context.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AgentContextMiddleware extracts the acting agent's identity set by the
// Gateway after it has verified the wallet signature. The core never sees
// raw signatures — only the authenticated address.
func AgentContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		address := c.Get("X-Agent-Address")

		// 🔐 Secured paths (/s/...) must carry an authenticated address.
		if strings.HasPrefix(c.Path(), "/s/") && address == "" {
			log.Printf("❌ [AGENT_CTX] X-Agent-Address required but missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Agent-Address — request must come through gateway with auth context",
			})
		}

		c.Locals("agent_address", address)
		return c.Next()
	}
}

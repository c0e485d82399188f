// handlers/agent_routes.go
package handlers

import (
	"bounty-board-system/middleware"
	"bounty-board-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAgentRoutes(app *fiber.App, agentService *services.AgentService) {
	app.Get("/agents/:address", agentService.GetAgentHandler)

	secured := app.Group("/s", middleware.AgentContextMiddleware())
	secured.Post("/agents/register", agentService.RegisterHandler)
}

// handlers/bounty_routes.go
package handlers

import (
	"bounty-board-system/middleware"
	"bounty-board-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBountyRoutes(app *fiber.App, bountyService *services.BountyService) {
	// 🔓 Public routes — no agent context, but still behind Gateway auth
	app.Get("/bounties", bountyService.ListBountiesHandler)
	app.Get("/bounties/:id", bountyService.GetBountyHandler)

	// 🔐 Secured routes — require agent context from the Gateway
	secured := app.Group("/s", middleware.AgentContextMiddleware())

	secured.Post("/bounties", bountyService.CreateBountyHandler)
	secured.Post("/bounties/:id/claim", bountyService.ClaimBountyHandler)
	secured.Post("/bounties/:id/submissions", bountyService.SubmitWorkHandler)
	secured.Put("/bounties/:id/submissions/:sid", bountyService.EditSubmissionHandler)
	secured.Delete("/bounties/:id/submissions/:sid", bountyService.DeleteSubmissionHandler)
	secured.Post("/bounties/:id/submissions/attachment", bountyService.UploadProofAttachmentHandler)
	secured.Post("/bounties/:id/approve", bountyService.ApproveBountyHandler)
	secured.Post("/bounties/:id/reject", bountyService.RejectBountyHandler)
	secured.Post("/bounties/:id/release", bountyService.ReleaseBountyHandler)
	secured.Post("/bounties/:id/cancel", bountyService.CancelBountyHandler)
}

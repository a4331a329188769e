package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
	"musiclancer/internal/middleware"
)

func SetupProjectRoutes(app *fiber.App, projects *handlers.ProjectHandler, bids *handlers.BidHandler, payments *handlers.PaymentHandler, work *handlers.WorkHandler) {
	group := app.Group("/api/project", middleware.Protected())

	// Literal paths before the :projectId params.
	group.Post("/", projects.Create)
	group.Get("/my", projects.ListOwned)
	group.Get("/browse", projects.Browse)

	group.Get("/:projectId", projects.Get)
	group.Patch("/:projectId", projects.UpdateInfo)
	group.Post("/:projectId/finalize", projects.Finalize)

	group.Get("/:projectId/bids", bids.ListForProject)
	group.Get("/:projectId/payment", payments.GetForProject)

	group.Post("/:projectId/work", work.Submit)
	group.Get("/:projectId/work", work.ListForProject)
}

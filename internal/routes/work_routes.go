package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
	"musiclancer/internal/middleware"
)

func SetupWorkRoutes(app *fiber.App, work *handlers.WorkHandler) {
	group := app.Group("/api/work", middleware.Protected())

	group.Get("/order/:paymentId", work.WorkOrder)

	group.Post("/:workId/accept", work.Accept)
	group.Post("/:workId/reject", work.Reject)
	group.Post("/:workId/comment", work.Comment)
	group.Post("/:workId/dispute", work.RaiseDispute)
}

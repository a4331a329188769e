package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
	"musiclancer/internal/middleware"
)

func SetupBidRoutes(app *fiber.App, bids *handlers.BidHandler) {
	group := app.Group("/api/bid", middleware.Protected())

	group.Post("/", bids.Place)
	group.Get("/my", bids.ListMine)
	group.Patch("/:bidId", bids.Update)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
	"musiclancer/internal/middleware"
)

func SetupSubscriptionRoutes(app *fiber.App, subscriptions *handlers.SubscriptionHandler) {
	group := app.Group("/api/subscription", middleware.Protected())

	group.Get("/plans", subscriptions.ListPlans)
	group.Get("/my", subscriptions.ListMine)
	group.Get("/quota", subscriptions.Quota)
	group.Post("/purchase", subscriptions.Purchase)
	group.Post("/:subscriptionId/transaction", subscriptions.SubmitTransactionRef)
}

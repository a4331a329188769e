package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
	"musiclancer/internal/middleware"
)

func SetupAdminRoutes(app *fiber.App, payments *handlers.PaymentHandler, subscriptions *handlers.SubscriptionHandler, work *handlers.WorkHandler) {
	admin := app.Group("/api/admin", middleware.Protected(), middleware.AdminOnly())

	// Payment verification queue
	admin.Get("/payments", payments.ListPending)
	admin.Post("/payments/:paymentId/verify", payments.AdminVerify)

	// Subscription verification
	admin.Post("/subscriptions/:subscriptionId/verify", subscriptions.AdminVerify)

	// Dispute management
	admin.Get("/disputes", work.ListDisputes)
	admin.Post("/disputes/:workId/resolve", work.ResolveDispute)
}

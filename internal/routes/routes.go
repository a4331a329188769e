package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
)

// Handlers bundles every handler the route files need.
type Handlers struct {
	Users         *handlers.UserHandler
	Projects      *handlers.ProjectHandler
	Bids          *handlers.BidHandler
	Payments      *handlers.PaymentHandler
	Work          *handlers.WorkHandler
	Subscriptions *handlers.SubscriptionHandler
	Chat          *handlers.ChatHandler
	Notifications *handlers.NotificationHandler
}

// Setup registers every route group on the app.
func Setup(app *fiber.App, h Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, h.Users)
	SetupProjectRoutes(app, h.Projects, h.Bids, h.Payments, h.Work)
	SetupBidRoutes(app, h.Bids)
	SetupPaymentRoutes(app, h.Payments)
	SetupWorkRoutes(app, h.Work)
	SetupSubscriptionRoutes(app, h.Subscriptions)
	SetupChatRoutes(app, h.Chat)
	SetupNotificationRoutes(app, h.Notifications)
	SetupAdminRoutes(app, h.Payments, h.Subscriptions, h.Work)
}

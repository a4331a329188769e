package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
	"musiclancer/internal/middleware"
)

func SetupNotificationRoutes(app *fiber.App, notifications *handlers.NotificationHandler) {
	group := app.Group("/api/notifications", middleware.Protected())

	group.Get("/", notifications.List)
	group.Post("/:notificationId/read", notifications.MarkRead)
}

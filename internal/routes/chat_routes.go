package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
	"musiclancer/internal/middleware"
)

func SetupChatRoutes(app *fiber.App, chat *handlers.ChatHandler) {
	group := app.Group("/api/chat", middleware.Protected())

	group.Get("/rooms", chat.ListRooms)
	group.Get("/:projectId/initiate", chat.Initiate)
	group.Get("/:projectId/messages", chat.Messages)
	group.Post("/:projectId/messages", chat.Post)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
	"musiclancer/internal/middleware"
)

func SetupAuthRoutes(app *fiber.App, users *handlers.UserHandler) {
	group := app.Group("/api/auth")

	group.Post("/register", users.Register)
	group.Post("/login", users.Login)
	group.Get("/me", middleware.Protected(), users.Me)
}

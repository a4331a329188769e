package routes

import (
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/handlers"
	"musiclancer/internal/middleware"
)

func SetupPaymentRoutes(app *fiber.App, payments *handlers.PaymentHandler) {
	group := app.Group("/api/payment", middleware.Protected())

	group.Post("/:paymentId/transaction", payments.SubmitTransactionRef)
}

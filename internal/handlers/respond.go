package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/services"
)

var validate = validator.New()

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}

// respondError turns a service error into the matching HTTP response.
// Anything that is not a services.Error is logged and hidden behind a 500.
func respondError(c *fiber.Ctx, err error) error {
	svcErr, ok := services.AsError(err)
	if !ok {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server error",
		})
	}

	status := fiber.StatusInternalServerError
	switch svcErr.Kind {
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindForbidden, services.KindQuotaExceeded:
		status = fiber.StatusForbidden
	case services.KindInvalidState, services.KindValidation:
		status = fiber.StatusBadRequest
	case services.KindConflict:
		status = fiber.StatusConflict
	}

	payload := fiber.Map{
		"success": false,
		"error":   svcErr.Message,
	}
	for k, v := range svcErr.Detail {
		payload[k] = v
	}
	return c.Status(status).JSON(payload)
}

func respondValidation(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c *fiber.Ctx, status int, message string, data interface{}) error {
	payload := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		payload["data"] = data
	}
	return c.Status(status).JSON(payload)
}

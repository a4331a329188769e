package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/services"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notes, err := h.notifications.ListForUser(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, notes)
}

// MarkRead marks a single notification as read.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("notificationId"), 10, 32)
	if err != nil {
		return respondValidation(c, "Invalid notification id")
	}

	if err := h.notifications.MarkRead(currentUserID(c), uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Notification marked as read", nil)
}

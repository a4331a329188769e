package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"musiclancer/internal/services"
)

type PostMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ListRooms returns every chat room the caller can participate in.
func (h *ChatHandler) ListRooms(c *fiber.Ctx) error {
	rooms, err := h.chat.List(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, rooms)
}

// Initiate opens the project chat, returning room metadata and recent history.
func (h *ChatHandler) Initiate(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	state, err := h.chat.Initiate(currentUserID(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, state)
}

// Messages pages backwards through chat history.
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "30"))
	skip, _ := strconv.Atoi(c.Query("skip", "0"))

	messages, err := h.chat.Messages(currentUserID(c), projectID, limit, skip)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, messages)
}

// Post stores a new chat message in the project room.
func (h *ChatHandler) Post(c *fiber.Ctx) error {
	projectID, err := paramInt64(c, "projectId")
	if err != nil {
		return respondValidation(c, "Invalid project id")
	}

	req := new(PostMessageRequest)
	if err := c.BodyParser(req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err.Error())
	}

	message, err := h.chat.Post(currentUserID(c), projectID, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, "Message sent", message)
}

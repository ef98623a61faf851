package handler

import (
	"strings"

	"ctfchat-backend/internal/model"
	"ctfchat-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	messages *repository.MessageRepository
}

func NewChatHandler(messages *repository.MessageRepository) *ChatHandler {
	return &ChatHandler{messages: messages}
}

// GetMessages returns the history for one channel.
// GET /api/messages/global or /api/messages/team_<team_id>
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	channelType := c.Params("channel_type")

	var ch model.Channel
	switch {
	case channelType == model.ChannelGlobal:
		ch = model.GlobalChannel()
	case strings.HasPrefix(channelType, "team_"):
		ch = model.TeamChannel(strings.TrimPrefix(channelType, "team_"))
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid channel type"})
	}

	msgs := h.messages.List(ch)
	if msgs == nil {
		msgs = []model.Message{}
	}
	return c.JSON(fiber.Map{"messages": msgs})
}

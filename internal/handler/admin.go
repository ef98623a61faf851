package handler

import (
	"errors"
	"fmt"

	"ctfchat-backend/internal/model"
	"ctfchat-backend/internal/repository"
	"ctfchat-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	hub        *service.Hub
	messages   *repository.MessageRepository
	moderation *repository.ModerationRepository
}

func NewAdminHandler(hub *service.Hub, messages *repository.MessageRepository, moderation *repository.ModerationRepository) *AdminHandler {
	return &AdminHandler{hub: hub, messages: messages, moderation: moderation}
}

// Users lists connected users with their moderation status.
// GET /api/admin/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users := h.hub.ConnectedUsers()
	blocked, muted := h.moderation.Counts()

	return c.JSON(fiber.Map{
		"users":         users,
		"total_users":   len(users),
		"blocked_count": blocked,
		"muted_count":   muted,
	})
}

// AllMessages returns every channel's current log.
// GET /api/admin/messages/all
func (h *AdminHandler) AllMessages(c *fiber.Ctx) error {
	global, teams := h.messages.All()
	return c.JSON(fiber.Map{
		"messages": fiber.Map{
			"global": global,
			"teams":  teams,
		},
	})
}

// DeleteMessage removes one message by id.
// DELETE /api/admin/message/delete
func (h *AdminHandler) DeleteMessage(c *fiber.Ctx) error {
	var req struct {
		MessageID   string `json:"message_id"`
		ChannelType string `json:"channel_type"`
		TeamID      string `json:"team_id"`
		AdminUser   string `json:"admin_user"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.AdminUser == "" {
		req.AdminUser = "Unknown Admin"
	}

	if _, err := h.hub.DeleteMessage(req.ChannelType, req.TeamID, req.MessageID, req.AdminUser); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Message not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": "Invalid channel type"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Message deleted successfully"})
}

// BlockUser blocks a user and disconnects their live sessions.
// POST /api/admin/user/block
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	var req struct {
		UserID    string `json:"user_id"`
		BlockType string `json:"block_type"`
		AdminUser string `json:"admin_user"`
		Reason    string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}
	if req.BlockType == "" {
		req.BlockType = "chat" // "chat" or "platform"
	}
	if req.AdminUser == "" {
		req.AdminUser = "Unknown Admin"
	}
	if req.Reason == "" {
		req.Reason = "No reason provided"
	}

	h.hub.BlockUser(req.UserID, req.BlockType, req.AdminUser, req.Reason)
	return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("User %s blocked successfully", req.UserID)})
}

// MuteUser mutes a user; their sessions stay connected.
// POST /api/admin/user/mute
func (h *AdminHandler) MuteUser(c *fiber.Ctx) error {
	var req struct {
		UserID    string `json:"user_id"`
		AdminUser string `json:"admin_user"`
		Reason    string `json:"reason"`
		Duration  string `json:"duration"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}
	if req.AdminUser == "" {
		req.AdminUser = "Unknown Admin"
	}
	if req.Reason == "" {
		req.Reason = "No reason provided"
	}
	if req.Duration == "" {
		req.Duration = "permanent" // advisory only, never enforced
	}

	h.hub.MuteUser(req.UserID, req.AdminUser, req.Reason, req.Duration)
	return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("User %s muted successfully", req.UserID)})
}

// UnblockUser clears both block and mute for a user.
// POST /api/admin/user/unblock
func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	var req struct {
		UserID    string `json:"user_id"`
		AdminUser string `json:"admin_user"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}
	if req.AdminUser == "" {
		req.AdminUser = "Unknown Admin"
	}

	h.hub.UnblockUser(req.UserID, req.AdminUser)
	return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("User %s unblocked successfully", req.UserID)})
}

// Logs returns the most recent 100 audit log entries.
// GET /api/admin/logs
func (h *AdminHandler) Logs(c *fiber.Ctx) error {
	logs, total := h.moderation.RecentLogs(100)
	if logs == nil {
		logs = []model.AuditLogEntry{}
	}
	return c.JSON(fiber.Map{"logs": logs, "total_logs": total})
}

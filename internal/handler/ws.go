package handler

import (
	"encoding/json"
	"errors"
	"time"

	"ctfchat-backend/internal/model"
	"ctfchat-backend/internal/service"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type WSHandler struct {
	hub *service.Hub
	log zerolog.Logger
}

func NewWSHandler(hub *service.Hub, log zerolog.Logger) *WSHandler {
	return &WSHandler{hub: hub, log: log}
}

func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(h.handleConnection)(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *WSHandler) handleConnection(c *websocket.Conn) {
	sessionID := uuid.NewString()
	client := service.NewClient(sessionID, 256)

	h.hub.Connect(client)
	defer h.hub.Disconnect(sessionID)

	// Writer goroutine; exits when the hub closes Send
	go func() {
		defer c.Close()
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}()

	c.SetReadDeadline(time.Now().Add(60 * time.Second))
	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			break
		}

		// Reset deadline on any message
		c.SetReadDeadline(time.Now().Add(60 * time.Second))

		var event model.WSEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}
		h.dispatch(sessionID, event)
	}
}

// dispatch routes one inbound event. A panic in any handler is contained
// here and reported to the offending session only.
func (h *WSHandler) dispatch(sessionID string, event model.WSEvent) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Str("event", event.Type).Str("session", sessionID).Msg("event handler panic")
			h.sendError(sessionID, "internal server error")
		}
	}()

	var err error
	switch event.Type {
	case "ping":
		h.hub.SendEvent(sessionID, "pong", nil)
		return

	case "join_chat":
		var req model.JoinChatRequest
		if !h.decode(sessionID, event.Data, &req) {
			return
		}
		err = h.hub.Join(sessionID, req)

	case "send_message":
		var req model.SendMessageRequest
		if !h.decode(sessionID, event.Data, &req) {
			return
		}
		err = h.hub.SendMessage(sessionID, req)

	case "typing":
		var req model.TypingRequest
		if !h.decode(sessionID, event.Data, &req) {
			return
		}
		err = h.hub.Typing(sessionID, req)

	case "admin_broadcast":
		var req model.AdminBroadcastRequest
		if !h.decode(sessionID, event.Data, &req) {
			return
		}
		err = h.hub.AdminBroadcast(sessionID, req)

	case "admin_monitor_request":
		var req model.MonitorRequest
		if !h.decode(sessionID, event.Data, &req) {
			return
		}
		err = h.hub.MonitorTeam(sessionID, req.TeamID)

	default:
		h.log.Debug().Str("type", event.Type).Str("session", sessionID).Msg("unknown event type")
		return
	}

	if err == nil {
		return
	}
	if errors.Is(err, service.ErrFlagContent) {
		h.hub.SendEvent(sessionID, "message_blocked", model.MessageBlocked{
			Reason:  "Flag sharing is not allowed in global chat",
			Message: "Please use team chat to share flags with your teammates.",
		})
		return
	}
	h.sendError(sessionID, err.Error())
}

func (h *WSHandler) decode(sessionID string, data json.RawMessage, v any) bool {
	if len(data) == 0 {
		return true
	}
	if err := json.Unmarshal(data, v); err != nil {
		h.sendError(sessionID, "invalid event payload")
		return false
	}
	return true
}

func (h *WSHandler) sendError(sessionID, message string) {
	h.hub.SendEvent(sessionID, "error", model.ErrorPayload{Message: message})
}

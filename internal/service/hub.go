package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"ctfchat-backend/internal/metrics"
	"ctfchat-backend/internal/model"
	"ctfchat-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub routes inbound chat events: it validates the session, consults
// moderation state and the flag filter, mutates the message log and fans the
// result out to the right set of sessions. All mutating event handling is
// serialized behind one mutex, so per-channel stored order equals the order
// broadcasts are observed.
type Hub struct {
	mu         sync.Mutex
	clients    map[string]*Client // sessionID -> client
	registry   *SessionRegistry
	messages   *repository.MessageRepository
	moderation *repository.ModerationRepository
	filter     *FlagFilter
	log        zerolog.Logger
}

func NewHub(
	registry *SessionRegistry,
	messages *repository.MessageRepository,
	moderation *repository.ModerationRepository,
	filter *FlagFilter,
	log zerolog.Logger,
) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		registry:   registry,
		messages:   messages,
		moderation: moderation,
		filter:     filter,
		log:        log,
	}
}

// Connect registers a new, not-yet-joined session and acknowledges it.
func (h *Hub) Connect(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.SessionID] = client
	metrics.ConnectionsActive.Inc()
	h.log.Debug().Str("session", client.SessionID).Int("total", len(h.clients)).Msg("session connected")

	h.sendLocked(client, "connected", model.ConnectedPayload{Status: "Connected to CTF Chat"})
}

// Disconnect tears down a session. Safe to call twice, and safe for sessions
// that never joined: a concurrent admin block and a client disconnect
// converge on this same removal path.
func (h *Hub) Disconnect(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(sessionID)
}

// Join binds an identity claim to the session and subscribes it to its rooms.
func (h *Hub) Join(sessionID string, req model.JoinChatRequest) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[sessionID]
	if !ok {
		return ErrNotJoined
	}

	info := model.UserInfo{
		UserID:   req.UserID,
		Username: req.Username,
		TeamID:   req.TeamID,
		TeamName: req.TeamName,
		IsAdmin:  req.IsAdmin,
	}
	h.registry.Join(sessionID, info)
	if info.TeamID != "" {
		h.messages.EnsureTeam(info.TeamID)
	}

	h.log.Info().
		Str("session", sessionID).
		Str("user_id", info.UserID).
		Str("username", info.Username).
		Str("team_id", info.TeamID).
		Bool("is_admin", info.IsAdmin).
		Msg("user joined chat")

	h.sendLocked(client, "join_success", model.JoinSuccess{
		Message:  fmt.Sprintf("Welcome to CTF Chat, %s!", info.Username),
		UserInfo: info,
	})
	h.broadcastRoomLocked(model.RoomGlobal, "user_joined", model.UserJoined{
		Username:  info.Username,
		TeamName:  info.TeamName,
		Timestamp: isoNow(),
	}, "")
	return nil
}

// SendMessage validates, stores and broadcasts a chat message.
func (h *Hub) SendMessage(sessionID string, req model.SendMessageRequest) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	info, ok := h.registry.Lookup(sessionID)
	if !ok {
		return ErrNotJoined
	}
	if h.moderation.IsBlocked(info.UserID) {
		metrics.MessagesRejected.WithLabelValues("blocked").Inc()
		return ErrBlocked
	}
	if h.moderation.IsMuted(info.UserID) {
		metrics.MessagesRejected.WithLabelValues("muted").Inc()
		return ErrMuted
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		metrics.MessagesRejected.WithLabelValues("empty").Inc()
		return ErrEmptyMessage
	}

	switch req.ChannelType {
	case model.ChannelGlobal:
		if !info.IsAdmin && h.filter.Detect(text) {
			metrics.MessagesRejected.WithLabelValues("flag_content").Inc()
			h.log.Warn().Str("user_id", info.UserID).Msg("flag content rejected in global chat")
			return ErrFlagContent
		}
		msg := h.messages.Append(model.GlobalChannel(), h.buildMessage(info, text, model.ChannelGlobal))
		h.broadcastRoomLocked(model.RoomGlobal, "new_message", msg, "")

	case model.ChannelTeam:
		if info.TeamID == "" {
			metrics.MessagesRejected.WithLabelValues("no_team").Inc()
			return ErrNoTeam
		}
		msg := h.messages.Append(model.TeamChannel(info.TeamID), h.buildMessage(info, text, model.ChannelTeam))
		h.broadcastRoomLocked(model.TeamRoom(info.TeamID), "new_message", msg, "")

	default:
		return ErrInvalidChannel
	}

	metrics.MessagesSent.WithLabelValues(req.ChannelType).Inc()
	return nil
}

// Typing relays a typing indicator to the relevant room, excluding the
// sender. Nothing is persisted.
func (h *Hub) Typing(sessionID string, req model.TypingRequest) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	info, ok := h.registry.Lookup(sessionID)
	if !ok {
		return ErrNotJoined
	}

	payload := model.UserTyping{
		Username:  info.Username,
		TeamName:  info.TeamName,
		IsTyping:  req.IsTyping,
		Timestamp: isoNow(),
	}
	switch req.ChannelType {
	case model.ChannelGlobal:
		h.broadcastRoomLocked(model.RoomGlobal, "user_typing", payload, sessionID)
	case model.ChannelTeam:
		if info.TeamID != "" {
			h.broadcastRoomLocked(model.TeamRoom(info.TeamID), "user_typing", payload, sessionID)
		}
	}
	return nil
}

// AdminBroadcast stores an announcement in the global log and sends it to
// every connected session regardless of room membership. Admin broadcasts
// bypass the flag filter and moderation checks.
func (h *Hub) AdminBroadcast(sessionID string, req model.AdminBroadcastRequest) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	info, ok := h.registry.Lookup(sessionID)
	if !ok {
		return ErrNotJoined
	}
	if !info.IsAdmin {
		return ErrNotAdmin
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return ErrEmptyMessage
	}

	msg := model.Message{
		ID:          uuid.NewString(),
		UserID:      info.UserID,
		Username:    info.Username,
		IsAdmin:     true,
		Message:     text,
		Timestamp:   isoNow(),
		ChannelType: model.ChannelAdminBroadcast,
		IsBroadcast: true,
	}
	msg = h.messages.Append(model.GlobalChannel(), msg)
	h.broadcastAllLocked("admin_broadcast", msg)

	metrics.MessagesSent.WithLabelValues(model.ChannelAdminBroadcast).Inc()
	h.log.Info().Str("user_id", info.UserID).Msg("admin broadcast sent")
	return nil
}

// MonitorTeam sends a team channel's log snapshot to the requesting admin
// session only.
func (h *Hub) MonitorTeam(sessionID, teamID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	info, ok := h.registry.Lookup(sessionID)
	if !ok {
		return ErrNotJoined
	}
	if !info.IsAdmin {
		return ErrNotAdmin
	}
	if teamID == "" || !h.messages.HasTeam(teamID) {
		return fmt.Errorf("team not found: %w", ErrNotFound)
	}

	client, ok := h.clients[sessionID]
	if !ok {
		return ErrNotJoined
	}
	h.sendLocked(client, "admin_team_messages", model.TeamMessages{
		TeamID:   teamID,
		Messages: h.messages.List(model.TeamChannel(teamID)),
	})
	return nil
}

// SendEvent delivers a one-off event to a single session if it is still
// connected. Used by the transport layer for errors and pongs so that no
// send can race a forced disconnect.
func (h *Hub) SendEvent(sessionID, event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[sessionID]; ok {
		h.sendLocked(client, event, payload)
	}
}

// DeleteMessage removes a message on behalf of an admin, records the action
// and notifies every connected session.
func (h *Hub) DeleteMessage(channelType, teamID, messageID, adminUser string) (model.Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ch model.Channel
	switch channelType {
	case model.ChannelGlobal:
		ch = model.GlobalChannel()
	case model.ChannelTeam:
		if teamID == "" {
			return model.Message{}, ErrInvalidChannel
		}
		ch = model.TeamChannel(teamID)
	default:
		return model.Message{}, ErrInvalidChannel
	}

	removed, ok := h.messages.Delete(ch, messageID)
	if !ok {
		return model.Message{}, fmt.Errorf("message not found: %w", ErrNotFound)
	}

	h.moderation.Record(model.AuditLogEntry{
		AdminUser:  adminUser,
		Action:     "DELETE_MESSAGE",
		TargetUser: removed.Username,
		Details:    fmt.Sprintf("Deleted message: '%s...'", truncate(removed.Message, 50)),
	})
	metrics.AdminActions.WithLabelValues("delete_message").Inc()

	h.broadcastAllLocked("message_deleted", model.MessageDeleted{
		MessageID:      messageID,
		ChannelType:    channelType,
		TeamID:         teamID,
		DeletedByAdmin: true,
	})
	return removed, nil
}

// BlockUser blocks the user id, notifies every live session of that user and
// forcibly terminates them.
func (h *Hub) BlockUser(userID, blockType, adminUser, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.moderation.Block(userID)
	h.moderation.Record(model.AuditLogEntry{
		AdminUser:  adminUser,
		Action:     "BLOCK_USER_" + strings.ToUpper(blockType),
		TargetUser: userID,
		Details:    "Reason: " + reason,
	})
	metrics.AdminActions.WithLabelValues("block_user").Inc()

	for _, sid := range h.registry.SessionsForUser(userID) {
		if client, ok := h.clients[sid]; ok {
			h.sendLocked(client, "user_blocked", model.UserBlocked{
				Reason:         reason,
				BlockType:      blockType,
				BlockedByAdmin: true,
			})
			h.dropLocked(sid)
		}
	}
	h.log.Info().Str("user_id", userID).Str("block_type", blockType).Str("admin", adminUser).Msg("user blocked")
}

// MuteUser mutes the user id and notifies their live sessions. Sessions stay
// connected; the duration is advisory and never enforced.
func (h *Hub) MuteUser(userID, adminUser, reason, duration string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.moderation.Mute(userID)
	h.moderation.Record(model.AuditLogEntry{
		AdminUser:  adminUser,
		Action:     "MUTE_USER",
		TargetUser: userID,
		Details:    fmt.Sprintf("Reason: %s, Duration: %s", reason, duration),
	})
	metrics.AdminActions.WithLabelValues("mute_user").Inc()

	for _, sid := range h.registry.SessionsForUser(userID) {
		if client, ok := h.clients[sid]; ok {
			h.sendLocked(client, "user_muted", model.UserMuted{
				Reason:       reason,
				Duration:     duration,
				MutedByAdmin: true,
			})
		}
	}
	h.log.Info().Str("user_id", userID).Str("admin", adminUser).Msg("user muted")
}

// UnblockUser clears both block and mute for the user id.
func (h *Hub) UnblockUser(userID, adminUser string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.moderation.Unblock(userID)
	h.moderation.Record(model.AuditLogEntry{
		AdminUser:  adminUser,
		Action:     "UNBLOCK_USER",
		TargetUser: userID,
	})
	metrics.AdminActions.WithLabelValues("unblock_user").Inc()
	h.log.Info().Str("user_id", userID).Str("admin", adminUser).Msg("user unblocked")
}

// ConnectedUsers returns a point-in-time snapshot of joined sessions with
// their moderation status, ordered by session id.
func (h *Hub) ConnectedUsers() []model.ConnectedUser {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions := h.registry.Sessions()
	out := make([]model.ConnectedUser, 0, len(sessions))
	for sid, info := range sessions {
		out = append(out, model.ConnectedUser{
			SessionID: sid,
			UserID:    info.UserID,
			Username:  info.Username,
			TeamID:    info.TeamID,
			TeamName:  info.TeamName,
			IsAdmin:   info.IsAdmin,
			IsBlocked: h.moderation.IsBlocked(info.UserID),
			IsMuted:   h.moderation.IsMuted(info.UserID),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out
}

func (h *Hub) buildMessage(info model.UserInfo, text, channelType string) model.Message {
	return model.Message{
		ID:          uuid.NewString(),
		UserID:      info.UserID,
		Username:    info.Username,
		TeamID:      info.TeamID,
		TeamName:    info.TeamName,
		IsAdmin:     info.IsAdmin,
		Message:     text,
		Timestamp:   isoNow(),
		ChannelType: channelType,
	}
}

// dropLocked removes the client, closes its send channel (which ends the
// transport writer) and clears registry state. No-op for unknown sessions.
func (h *Hub) dropLocked(sessionID string) {
	client, ok := h.clients[sessionID]
	if ok {
		delete(h.clients, sessionID)
		close(client.Send)
		metrics.ConnectionsActive.Dec()
		h.log.Debug().Str("session", sessionID).Int("total", len(h.clients)).Msg("session disconnected")
	}
	h.registry.Leave(sessionID)
}

func (h *Hub) sendLocked(client *Client, event string, payload any) {
	data, err := MarshalEvent(event, payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("marshal outbound event")
		return
	}
	if !client.enqueue(data) {
		h.log.Warn().Str("session", client.SessionID).Str("event", event).Msg("send buffer full, event dropped")
	}
}

func (h *Hub) broadcastRoomLocked(room, event string, payload any, excludeSessionID string) {
	data, err := MarshalEvent(event, payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("marshal outbound event")
		return
	}
	for _, sid := range h.registry.RoomMembers(room) {
		if sid == excludeSessionID {
			continue
		}
		if client, ok := h.clients[sid]; ok {
			client.enqueue(data)
		}
	}
}

func (h *Hub) broadcastAllLocked(event string, payload any) {
	data, err := MarshalEvent(event, payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("marshal outbound event")
		return
	}
	for _, client := range h.clients {
		client.enqueue(data)
	}
}

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

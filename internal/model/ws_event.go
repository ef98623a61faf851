package model

import "encoding/json"

// WSEvent is the envelope for every inbound and outbound websocket event.
type WSEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound payloads.

type JoinChatRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	TeamID   string `json:"team_id,omitempty"`
	TeamName string `json:"team_name,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

type SendMessageRequest struct {
	ChannelType string `json:"channel_type"`
	Message     string `json:"message"`
}

type TypingRequest struct {
	ChannelType string `json:"channel_type"`
	IsTyping    bool   `json:"is_typing"`
}

type AdminBroadcastRequest struct {
	Message string `json:"message"`
}

type MonitorRequest struct {
	TeamID string `json:"team_id"`
}

// Outbound payloads.

type ConnectedPayload struct {
	Status string `json:"status"`
}

type JoinSuccess struct {
	Message  string   `json:"message"`
	UserInfo UserInfo `json:"user_info"`
}

type UserJoined struct {
	Username  string `json:"username"`
	TeamName  string `json:"team_name,omitempty"`
	Timestamp string `json:"timestamp"`
}

type MessageBlocked struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type UserTyping struct {
	Username  string `json:"username"`
	TeamName  string `json:"team_name,omitempty"`
	IsTyping  bool   `json:"is_typing"`
	Timestamp string `json:"timestamp"`
}

type TeamMessages struct {
	TeamID   string    `json:"team_id"`
	Messages []Message `json:"messages"`
}

type MessageDeleted struct {
	MessageID      string `json:"message_id"`
	ChannelType    string `json:"channel_type"`
	TeamID         string `json:"team_id,omitempty"`
	DeletedByAdmin bool   `json:"deleted_by_admin"`
}

type UserBlocked struct {
	Reason         string `json:"reason"`
	BlockType      string `json:"block_type"`
	BlockedByAdmin bool   `json:"blocked_by_admin"`
}

type UserMuted struct {
	Reason       string `json:"reason"`
	Duration     string `json:"duration"`
	MutedByAdmin bool   `json:"muted_by_admin"`
}

package model

// Channel types accepted in send_message / typing payloads.
const (
	ChannelGlobal = "global"
	ChannelTeam   = "team"

	// ChannelAdminBroadcast tags admin-wide announcements stored in the global log.
	ChannelAdminBroadcast = "admin_broadcast"
)

// Channel identifies a message stream: the global singleton or one per team.
type Channel struct {
	Type   string
	TeamID string
}

func GlobalChannel() Channel {
	return Channel{Type: ChannelGlobal}
}

func TeamChannel(teamID string) Channel {
	return Channel{Type: ChannelTeam, TeamID: teamID}
}

// Room names for broadcast membership.
const RoomGlobal = "global"

func TeamRoom(teamID string) string {
	return "team:" + teamID
}

// UserInfo is the identity claim a user supplies at join time.
// It is trusted as-is; nothing here is cryptographically verified.
type UserInfo struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	TeamID   string `json:"team_id,omitempty"`
	TeamName string `json:"team_name,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// Message is a stored chat message. Immutable once appended.
type Message struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	TeamID      string `json:"team_id,omitempty"`
	TeamName    string `json:"team_name,omitempty"`
	IsAdmin     bool   `json:"is_admin"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"` // ISO-8601 UTC
	ChannelType string `json:"channel_type"`
	IsBroadcast bool   `json:"is_broadcast,omitempty"`
}

// ConnectedUser is a live session with its moderation status, as returned
// by the admin user listing.
type ConnectedUser struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	TeamID    string `json:"team_id,omitempty"`
	TeamName  string `json:"team_name,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
	IsBlocked bool   `json:"is_blocked"`
	IsMuted   bool   `json:"is_muted"`
}

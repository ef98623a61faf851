package service

import (
	"sync"

	"ctfchat-backend/internal/model"
)

// SessionRegistry maps live session ids to their identity snapshot and room
// memberships. Room membership is an explicit map from room name to the set
// of subscribed session ids.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]model.UserInfo
	rooms    map[string]map[string]bool
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]model.UserInfo),
		rooms:    make(map[string]map[string]bool),
	}
}

// Join registers the session's identity snapshot and subscribes it to the
// global room, plus the team room if the identity carries a team. Re-joining
// replaces any prior state for that session id.
func (r *SessionRegistry) Join(sessionID string, identity model.UserInfo) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(sessionID)
	r.sessions[sessionID] = identity

	rooms := []string{model.RoomGlobal}
	if identity.TeamID != "" {
		rooms = append(rooms, model.TeamRoom(identity.TeamID))
	}
	for _, room := range rooms {
		if _, ok := r.rooms[room]; !ok {
			r.rooms[room] = make(map[string]bool)
		}
		r.rooms[room][sessionID] = true
	}
	return rooms
}

// Leave removes the session and its room memberships. Safe to call for an
// unknown session id, and safe to call more than once.
func (r *SessionRegistry) Leave(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(sessionID)
}

// Lookup returns the identity snapshot for a session, or false if the
// session never joined.
func (r *SessionRegistry) Lookup(sessionID string) (model.UserInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.sessions[sessionID]
	return info, ok
}

// SessionsForUser returns all session ids currently bound to a user id.
func (r *SessionRegistry) SessionsForUser(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for sid, info := range r.sessions {
		if info.UserID == userID {
			out = append(out, sid)
		}
	}
	return out
}

// RoomMembers returns the session ids subscribed to a room.
func (r *SessionRegistry) RoomMembers(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[room]
	out := make([]string, 0, len(members))
	for sid := range members {
		out = append(out, sid)
	}
	return out
}

// Sessions returns a snapshot of all joined sessions.
func (r *SessionRegistry) Sessions() map[string]model.UserInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]model.UserInfo, len(r.sessions))
	for sid, info := range r.sessions {
		out[sid] = info
	}
	return out
}

// Count returns the number of joined sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRegistry) removeLocked(sessionID string) {
	delete(r.sessions, sessionID)
	for room, members := range r.rooms {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
}

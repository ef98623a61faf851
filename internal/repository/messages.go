package repository

import (
	"sync"
	"time"

	"ctfchat-backend/internal/model"

	"github.com/google/uuid"
)

// MessageRepository holds the per-channel message logs in memory.
// The global channel keeps the last globalCap messages, each team channel
// the last teamCap. Team channels are created lazily on first reference.
type MessageRepository struct {
	mu        sync.RWMutex
	globalCap int
	teamCap   int
	global    *ring[model.Message]
	teams     map[string]*ring[model.Message]
}

func NewMessageRepository(globalCap, teamCap int) *MessageRepository {
	return &MessageRepository{
		globalCap: globalCap,
		teamCap:   teamCap,
		global:    newRing[model.Message](globalCap),
		teams:     make(map[string]*ring[model.Message]),
	}
}

// Append stores a message in the channel's log, assigning an id and timestamp
// if the caller left them empty, and trims the log to capacity. Returns the
// stored message.
func (r *MessageRepository) Append(ch model.Channel, msg model.Message) model.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	r.logFor(ch).push(msg)
	return msg
}

// List returns the channel's messages in insertion order, creating the
// channel if it does not exist yet.
func (r *MessageRepository) List(ch model.Channel) []model.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logFor(ch).snapshot()
}

// Delete removes the message with the given id from the channel's log and
// returns it. The second return is false if the channel or message is unknown.
func (r *MessageRepository) Delete(ch model.Channel, messageID string) (model.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var log *ring[model.Message]
	if ch.Type == model.ChannelTeam {
		log = r.teams[ch.TeamID]
		if log == nil {
			return model.Message{}, false
		}
	} else {
		log = r.global
	}

	for i := 0; i < log.size(); i++ {
		if log.items[i].ID == messageID {
			return log.removeAt(i), true
		}
	}
	return model.Message{}, false
}

// EnsureTeam creates the team's channel log if it does not exist yet.
func (r *MessageRepository) EnsureTeam(teamID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[teamID]; !ok {
		r.teams[teamID] = newRing[model.Message](r.teamCap)
	}
}

// HasTeam reports whether the team's channel has ever been created.
func (r *MessageRepository) HasTeam(teamID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.teams[teamID]
	return ok
}

// All returns a snapshot of every channel's messages.
func (r *MessageRepository) All() (global []model.Message, teams map[string][]model.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	global = r.global.snapshot()
	teams = make(map[string][]model.Message, len(r.teams))
	for teamID, log := range r.teams {
		teams[teamID] = log.snapshot()
	}
	return global, teams
}

func (r *MessageRepository) logFor(ch model.Channel) *ring[model.Message] {
	if ch.Type == model.ChannelTeam {
		log, ok := r.teams[ch.TeamID]
		if !ok {
			log = newRing[model.Message](r.teamCap)
			r.teams[ch.TeamID] = log
		}
		return log
	}
	return r.global
}

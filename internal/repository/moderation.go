package repository

import (
	"sync"
	"time"

	"ctfchat-backend/internal/model"

	"github.com/google/uuid"
)

// ModerationRepository tracks blocked and muted user ids plus the admin audit
// log. Keyed by persistent user id, so moderation survives session churn.
type ModerationRepository struct {
	mu      sync.RWMutex
	blocked map[string]struct{}
	muted   map[string]struct{}
	logs    *ring[model.AuditLogEntry]
}

func NewModerationRepository(auditCap int) *ModerationRepository {
	return &ModerationRepository{
		blocked: make(map[string]struct{}),
		muted:   make(map[string]struct{}),
		logs:    newRing[model.AuditLogEntry](auditCap),
	}
}

func (r *ModerationRepository) Block(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocked[userID] = struct{}{}
}

// Unblock fully restores access: it clears the mute as well.
func (r *ModerationRepository) Unblock(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blocked, userID)
	delete(r.muted, userID)
}

func (r *ModerationRepository) Mute(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.muted[userID] = struct{}{}
}

func (r *ModerationRepository) Unmute(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.muted, userID)
}

func (r *ModerationRepository) IsBlocked(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.blocked[userID]
	return ok
}

func (r *ModerationRepository) IsMuted(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.muted[userID]
	return ok
}

// Counts returns how many users are blocked and muted.
func (r *ModerationRepository) Counts() (blocked, muted int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blocked), len(r.muted)
}

// Record appends an audit entry, assigning an id and timestamp if empty,
// and trims the log to capacity. Returns the stored entry.
func (r *ModerationRepository) Record(entry model.AuditLogEntry) model.AuditLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	r.logs.push(entry)
	return entry
}

// RecentLogs returns up to limit of the most recent entries in insertion
// order (most recent last), plus the total number of stored entries.
func (r *ModerationRepository) RecentLogs(limit int) ([]model.AuditLogEntry, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.logs.snapshot()
	total := len(entries)
	if limit > 0 && total > limit {
		entries = entries[total-limit:]
	}
	return entries, total
}

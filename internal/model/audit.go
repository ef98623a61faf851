package model

// AuditLogEntry records one admin action. Append-only, bounded retention.
type AuditLogEntry struct {
	ID         string `json:"id"`
	AdminUser  string `json:"admin_user"`
	Action     string `json:"action"`
	TargetUser string `json:"target_user,omitempty"`
	Details    string `json:"details,omitempty"`
	Timestamp  string `json:"timestamp"`
}

package domain

import "time"

// AuditLog records a lifecycle action taken on behalf of a user
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Action    string                 `db:"action" json:"action"`
	Details   map[string]interface{} `db:"details" json:"details"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Audit actions
const (
	AuditActionUserCreate = "user_create"
	AuditActionGameStart  = "game_start"
	AuditActionGameCancel = "game_cancel"
	AuditActionGameEnd    = "game_end"
	AuditActionReminder   = "reminder_sent"
)

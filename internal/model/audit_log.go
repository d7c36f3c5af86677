package model

import (
	"time"
)

// AuditLogEntry is an append-only record in the admin_logs collection.
// Entries are never mutated or deleted except by retention pruning.
type AuditLogEntry struct {
	ID        string         `firestore:"-" json:"id"`
	AdminID   string         `firestore:"admin_id" json:"adminId"`
	Action    string         `firestore:"action_type" json:"actionType"`
	Details   map[string]any `firestore:"details" json:"details"`
	Timestamp time.Time      `firestore:"timestamp,serverTimestamp" json:"timestamp"`
	IPAddress string         `firestore:"ip_address" json:"ipAddress,omitempty"`
}

// Admin audit action kinds.
const (
	ActionAdminCreated   = "ADMIN_CREATED"
	ActionTaskCreated    = "TASK_CREATED"
	ActionTaskUpdated    = "TASK_UPDATED"
	ActionTaskDeleted    = "TASK_DELETED"
	ActionPostDeleted    = "POST_DELETED"
	ActionUserSuspended  = "USER_SUSPENDED"
	ActionUserReinstated = "USER_REINSTATED"
	ActionPasswordReset  = "USER_PASSWORD_RESET"
)

package repository

import (
	"context"
	"time"
)

// AuditEvent is one row of the auth audit trail.
type AuditEvent struct {
	AccountID string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
	At        time.Time
}

// AuditRepository records auth events. Writes are best effort for callers.
type AuditRepository interface {
	Record(ctx context.Context, ev AuditEvent) error
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oksasatya/go-auth-api/internal/domain/repository"
)

type AuditRepository struct {
	db DB
}

func NewAuditRepository(db DB) *AuditRepository {
	return &AuditRepository{db: db}
}

var _ repository.AuditRepository = (*AuditRepository)(nil)

func (r *AuditRepository) Record(ctx context.Context, ev repository.AuditEvent) error {
	var accountID any
	if ev.AccountID != "" {
		accountID = ev.AccountID
	}
	meta := []byte("{}")
	if len(ev.Metadata) > 0 {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return fmt.Errorf("encode audit metadata: %w", err)
		}
		meta = b
	}
	at := ev.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO auth_audit_logs (account_id, email, action, ip, user_agent, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, accountID, ev.Email, ev.Action, ev.IP, ev.UserAgent, meta, at); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}

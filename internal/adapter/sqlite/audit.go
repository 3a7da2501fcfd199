package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/neomorfeo/leadflow/internal/domain"
)

// auditTimeFormat is fixed-width so that entries sort lexically by time.
const auditTimeFormat = "2006-01-02T15:04:05.000000000Z"

// AppendAudit stores an audit entry. Re-appending an entry with the same ID
// is a no-op, so retried jobs do not duplicate history.
func (r *LeadRepository) AppendAudit(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO lead_audit (id, lead_id, field, old_value, new_value, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.LeadID, e.Field, e.OldValue, e.NewValue,
		e.OccurredAt.UTC().Format(auditTimeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// ListAudit returns the change history of a lead, oldest first.
func (r *LeadRepository) ListAudit(ctx context.Context, leadID string) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, lead_id, field, old_value, new_value, occurred_at
		 FROM lead_audit WHERE lead_id = ? ORDER BY occurred_at, rowid`, leadID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var occurredAt string
		if err := rows.Scan(&e.ID, &e.LeadID, &e.Field, &e.OldValue, &e.NewValue, &occurredAt); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.OccurredAt, _ = time.Parse(auditTimeFormat, occurredAt)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

package river

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/leadflow/internal/domain"
)

// AuditWorker writes lead change jobs to the audit log.
type AuditWorker struct {
	river.WorkerDefaults[AuditJobArgs]

	log domain.AuditLog
}

// NewAuditWorker creates a worker appending to the given audit log.
func NewAuditWorker(log domain.AuditLog) *AuditWorker {
	return &AuditWorker{log: log}
}

// Work processes a single audit job.
func (w *AuditWorker) Work(ctx context.Context, job *river.Job[AuditJobArgs]) error {
	args := job.Args

	slog.InfoContext(ctx, "recording lead change",
		"lead_id", args.LeadID,
		"field", args.Field,
		"old", args.OldValue,
		"new", args.NewValue,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)

	err := w.log.AppendAudit(ctx, domain.AuditEntry{
		ID:         args.EntryID,
		LeadID:     args.LeadID,
		Field:      args.Field,
		OldValue:   args.OldValue,
		NewValue:   args.NewValue,
		OccurredAt: args.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

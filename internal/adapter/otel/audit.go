package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/leadflow/internal/domain"
)

// TracingAuditLog wraps a domain.AuditLog with OpenTelemetry tracing.
type TracingAuditLog struct {
	next   domain.AuditLog
	tracer trace.Tracer
}

var _ domain.AuditLog = (*TracingAuditLog)(nil)

func NewTracingAuditLog(next domain.AuditLog) *TracingAuditLog {
	return &TracingAuditLog{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (a *TracingAuditLog) AppendAudit(ctx context.Context, entry domain.AuditEntry) error {
	ctx, span := a.tracer.Start(ctx, "AuditLog.AppendAudit",
		trace.WithAttributes(
			attribute.String("lead.id", entry.LeadID),
			attribute.String("change.field", entry.Field),
		),
	)
	defer span.End()

	return endWith(span, a.next.AppendAudit(ctx, entry))
}

func (a *TracingAuditLog) ListAudit(ctx context.Context, leadID string) ([]domain.AuditEntry, error) {
	ctx, span := a.tracer.Start(ctx, "AuditLog.ListAudit",
		trace.WithAttributes(attribute.String("lead.id", leadID)),
	)
	defer span.End()

	entries, err := a.next.ListAudit(ctx, leadID)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(entries)))
	}
	return entries, endWith(span, err)
}

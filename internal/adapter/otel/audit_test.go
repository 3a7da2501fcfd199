package otel_test

import (
	"context"
	"testing"
	"time"

	adapter "github.com/neomorfeo/leadflow/internal/adapter/otel"
	"github.com/neomorfeo/leadflow/internal/domain"
)

type sliceAudit struct {
	entries []domain.AuditEntry
}

func (s *sliceAudit) AppendAudit(_ context.Context, e domain.AuditEntry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *sliceAudit) ListAudit(_ context.Context, leadID string) ([]domain.AuditEntry, error) {
	var out []domain.AuditEntry
	for _, e := range s.entries {
		if e.LeadID == leadID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestTracingAuditLog(t *testing.T) {
	exporter := setupTestTracer(t)
	log := adapter.NewTracingAuditLog(&sliceAudit{})
	ctx := context.Background()

	entry := domain.AuditEntry{
		ID:         "e-1",
		LeadID:     "lead-1",
		Field:      domain.FieldActivity,
		OldValue:   "Contacting",
		NewValue:   "Info Gathering",
		OccurredAt: time.Now(),
	}
	if err := log.AppendAudit(ctx, entry); err != nil {
		t.Fatalf("AppendAudit: %v", err)
	}

	entries, err := log.ListAudit(ctx, "lead-1")
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Name != "AuditLog.AppendAudit" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "AuditLog.AppendAudit")
	}
	assertAttribute(t, spans[0], "change.field", "activity")
	assertAttribute(t, spans[1], "result.count", "1")
}
